package main

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/ajitpratap0/dataprep/pkg/errors"
)

// profiler writes pprof profiles around one run.
type profiler struct {
	cpuFile string
	memFile string

	cpu *os.File
}

// start begins CPU profiling when a CPU profile was requested.
func (p *profiler) start() error {
	if p.cpuFile == "" {
		return nil
	}
	f, err := os.Create(p.cpuFile) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create CPU profile").
			WithDetail("path", p.cpuFile)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to start CPU profile")
	}
	p.cpu = f
	return nil
}

// stop ends CPU profiling and writes the heap profile, if requested.
func (p *profiler) stop() error {
	var err error
	if p.cpu != nil {
		pprof.StopCPUProfile()
		if cerr := p.cpu.Close(); cerr != nil {
			err = errors.Wrap(cerr, errors.ErrorTypeFile, "failed to close CPU profile")
		}
		p.cpu = nil
	}
	if p.memFile != "" {
		if merr := writeHeapProfile(p.memFile); err == nil {
			err = merr
		}
	}
	return err
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create memory profile").
			WithDetail("path", path)
	}
	defer f.Close()

	runtime.GC() // Get up-to-date statistics
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write memory profile")
	}
	return nil
}
