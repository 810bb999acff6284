package buildinfo

import (
	"strings"
	"testing"
)

func TestProducer(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.4.0"
	if got := Producer(); got != "execreport v1.4.0" {
		t.Errorf("Producer() = %q", got)
	}
	if strings.Contains(Producer(), Date) {
		t.Error("Producer() must not contain the build date")
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
}
