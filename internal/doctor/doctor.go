package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/nkov/tuneup/internal/config"
	"github.com/nkov/tuneup/internal/maint"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

type Check struct {
	Severity Severity `json:"severity"`
	Name     string   `json:"name"`
	Message  string   `json:"message"`
}

type Report struct {
	Checks []Check `json:"checks"`
}

func (r Report) HasErrors() bool {
	for _, check := range r.Checks {
		if check.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (r Report) ErrorCount() int {
	count := 0
	for _, check := range r.Checks {
		if check.Severity == SeverityError {
			count++
		}
	}
	return count
}

type Checker struct {
	LookPath      func(string) (string, error)
	CheckWritable func(string) error
	StatDir       func(string) error
	IsElevated    func() bool
}

func NewChecker() *Checker {
	return &Checker{
		LookPath: exec.LookPath,
		CheckWritable: func(path string) error {
			return checkDirWritable(path)
		},
		StatDir:    statDir,
		IsElevated: processIsElevated,
	}
}

// Check inspects the host for everything the maintenance catalog needs:
// the external binaries its steps invoke, write access to the log
// directory, and whether the process runs with elevated privileges.
func (c *Checker) Check(cfg config.Config) Report {
	report := Report{Checks: []Check{}}

	catalog := maint.Catalog(maint.CatalogOptions{ExtraTempRoots: cfg.Ops.ExtraTempDirs})
	for _, binary := range maint.RequiredBinaries(catalog) {
		location, err := c.LookPath(binary)
		if err != nil {
			report.Checks = append(report.Checks, Check{
				Severity: SeverityError,
				Name:     "dependency",
				Message:  fmt.Sprintf("%s not found in PATH", binary),
			})
			continue
		}
		report.Checks = append(report.Checks, Check{
			Severity: SeverityInfo,
			Name:     "dependency",
			Message:  fmt.Sprintf("%s found at %s", binary, location),
		})
	}

	if c.IsElevated() {
		report.Checks = append(report.Checks, Check{
			Severity: SeverityInfo,
			Name:     "privilege",
			Message:  "running with elevated privileges",
		})
	} else {
		report.Checks = append(report.Checks, Check{
			Severity: SeverityWarn,
			Name:     "privilege",
			Message:  "not running with elevated privileges; system repair and network operations may fail",
		})
	}

	if logFile, err := config.ExpandPath(cfg.LogFile); err != nil {
		report.Checks = append(report.Checks, Check{
			Severity: SeverityError,
			Name:     "filesystem",
			Message:  fmt.Sprintf("log_file path is invalid: %v", err),
		})
	} else if logFile != "" {
		logDir := filepath.Dir(logFile)
		if err := c.CheckWritable(logDir); err != nil {
			report.Checks = append(report.Checks, Check{
				Severity: SeverityWarn,
				Name:     "filesystem",
				Message:  fmt.Sprintf("log directory is not writable: %v", err),
			})
		} else {
			report.Checks = append(report.Checks, Check{
				Severity: SeverityInfo,
				Name:     "filesystem",
				Message:  fmt.Sprintf("log directory %s is writable", logDir),
			})
		}
	}

	for _, dir := range cfg.Ops.ExtraTempDirs {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			report.Checks = append(report.Checks, Check{
				Severity: SeverityError,
				Name:     "filesystem",
				Message:  fmt.Sprintf("extra_temp_dirs entry %q is invalid: %v", dir, err),
			})
			continue
		}
		if err := c.StatDir(expanded); err != nil {
			report.Checks = append(report.Checks, Check{
				Severity: SeverityWarn,
				Name:     "filesystem",
				Message:  fmt.Sprintf("extra temp dir %s is not accessible: %v", expanded, err),
			})
		} else {
			report.Checks = append(report.Checks, Check{
				Severity: SeverityInfo,
				Name:     "filesystem",
				Message:  fmt.Sprintf("extra temp dir %s is accessible", expanded),
			})
		}
	}

	return report
}

func statDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

func checkDirWritable(path string) error {
	if err := statDir(path); err != nil {
		return err
	}
	file, err := os.CreateTemp(path, ".tuneup-write-check-*")
	if err != nil {
		return err
	}
	name := file.Name()
	_ = file.Close()
	_ = os.Remove(name)
	return nil
}
