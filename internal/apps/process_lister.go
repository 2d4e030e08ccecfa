package apps

import (
	"context"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessLister reports the names of currently running processes.
type ProcessLister interface {
	RunningProcessNames(executionContext context.Context) ([]string, error)
}

// GopsutilProcessLister reads the process table through gopsutil.
type GopsutilProcessLister struct{}

// NewGopsutilProcessLister constructs the default process lister.
func NewGopsutilProcessLister() GopsutilProcessLister {
	return GopsutilProcessLister{}
}

// RunningProcessNames collects the name of every visible process. Processes
// that disappear mid-listing are skipped.
func (GopsutilProcessLister) RunningProcessNames(executionContext context.Context) ([]string, error) {
	runningProcesses, listError := process.ProcessesWithContext(executionContext)
	if listError != nil {
		return nil, listError
	}

	processNames := make([]string, 0, len(runningProcesses))
	for _, runningProcess := range runningProcesses {
		processName, nameError := runningProcess.NameWithContext(executionContext)
		if nameError != nil {
			continue
		}
		processNames = append(processNames, processName)
	}

	return processNames, nil
}
