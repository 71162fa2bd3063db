// Package procutil queries basic metadata about a running process.
//
// The package opens a limited-access handle to a process, reads the full
// path of its executable image and its creation time, and releases the handle
// before returning. Every failure is reported as a *QueryError carrying an
// ErrorKind, so callers can tell a process they cannot reach apart from one
// whose metadata could not be read.
//
// A Handle kept open across calls also reports the processor time the process
// has consumed (UsageSampler turns successive readings into a utilization
// average) and can restrict the process to a set of logical processors.
//
// # Platform Support
//
//   - Windows: OpenProcess with PROCESS_QUERY_LIMITED_INFORMATION and
//     PROCESS_SET_LIMITED_INFORMATION, QueryFullProcessImageName,
//     GetProcessTimes, SetProcessDefaultCpuSets
//   - Linux: a pidfd (or a /proc/<pid> descriptor on older kernels), the
//     /proc/<pid>/exe link, sched_setaffinity, and
//     github.com/shirou/gopsutil/v4 for start and CPU times
//   - macOS, BSD, Solaris, AIX: github.com/shirou/gopsutil/v4/process;
//     processor sets are not supported
//
// # Example Usage
//
//	info, err := procutil.Query(pid, procutil.DefaultMaxPathCapacity)
//	switch {
//	case errors.Is(err, procutil.ErrProcessNotAccessible):
//	    fmt.Printf("process %d does not exist or access was denied\n", pid)
//	case err != nil:
//	    fmt.Printf("process %d metadata unavailable: %v\n", pid, err)
//	default:
//	    fmt.Printf("%s (%s) started %s\n", info.Name, info.ImagePath, info.CreationTime.Time())
//	}
//
//	// Check whether a process can be opened at all
//	if procutil.IsProcessRunning(pid) {
//	    fmt.Printf("Process %d is running\n", pid)
//	}
//
// Query holds no state between calls and may be used from many goroutines at
// once. Each call owns its handle and buffers.
package procutil
