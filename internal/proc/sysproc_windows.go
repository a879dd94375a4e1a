//go:build windows

package proc

import (
	"fmt"
	"os/exec"
	"syscall"

	winapi "golang.org/x/sys/windows"
)

func newSysProcAttrForGroup() *syscall.SysProcAttr {
	// A new group lets taskkill /T take the whole tree down.
	return &syscall.SysProcAttr{CreationFlags: winapi.CREATE_NEW_PROCESS_GROUP}
}

func interruptGroup(pid int) error {
	return killGroup(pid)
}

func killGroup(pid int) error {
	if pid <= 0 {
		return nil
	}
	return exec.Command("taskkill", "/PID", fmt.Sprint(pid), "/T", "/F").Run()
}
