package iostat

import (
	"fmt"
	"os"
	"os/exec"

	"k8s.io/klog/v2"
)

// Prefilter shells out to grep to cut a large iostat log down to its
// header and matching device lines before tokenization. The transient
// intermediate file is written next to the source log and its path is
// returned. With an empty device name the log is copied as-is.
//
// Header lines are kept so the sampling-interval boundaries survive the
// cut; date-stamp lines do not, so a pre-filtered log plots against
// sequence numbers.
func Prefilter(path, devname string) (string, error) {
	out := path + ".parsed.csv"
	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	defer f.Close()

	cmd := exec.Command("grep", "-E", "^"+headerPrefix+"|"+devname, path)
	if devname == "" {
		cmd = exec.Command("cat", path)
	}
	cmd.Stdout = f
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pre-filtering %s: %w", path, err)
	}
	klog.Infof("Prepared file: %s", out)
	return out, nil
}
