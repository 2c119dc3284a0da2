// Package version provides build version information and detects an
// installed CAD kernel binary on PATH so the orchestrator can log which
// backend was selected — grounded on the teacher's CUE-binary-detection
// shape (exec.LookPath + regex version extraction), repurposed from CUE to
// the geometry kernel per SPEC_FULL.md §4.2.
package version

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
)

// These variables are set via ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info contains build version information.
type Info struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("tiacad %s (%s) built %s with %s", i.Version, i.GitCommit, i.BuildDate, i.GoVersion)
}

// KernelBinaryName is the executable tiacad looks for on PATH when probing
// for a real CAD kernel to back internal/backend.Kernel.
const KernelBinaryName = "tiacad-kernel"

// KernelBinaryInfo reports whether a CAD kernel binary is installed and,
// if so, its detected version.
type KernelBinaryInfo struct {
	Path    string
	Version string
	Found   bool
}

var kernelVersionRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// DetectKernelBinary looks for KernelBinaryName on PATH and extracts its
// reported version, mirroring the teacher's DetectCUEBinary shape.
func DetectKernelBinary() KernelBinaryInfo {
	path, err := exec.LookPath(KernelBinaryName)
	if err != nil {
		return KernelBinaryInfo{Found: false}
	}

	v, err := getKernelVersion(path)
	if err != nil {
		return KernelBinaryInfo{Path: path, Found: true}
	}
	return KernelBinaryInfo{Path: path, Found: true, Version: v}
}

func getKernelVersion(path string) (string, error) {
	cmd := exec.Command(path, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	match := kernelVersionRegex.FindString(out.String())
	if match == "" {
		return "", fmt.Errorf("failed to parse kernel version from output: %s", out.String())
	}
	if !strings.HasPrefix(match, "v") {
		match = "v" + match
	}
	return match, nil
}
