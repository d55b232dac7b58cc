package listflags

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestAddAllFlag(t *testing.T) {
	var all bool
	cmd := &cobra.Command{Use: "list"}
	AddAllFlag(cmd, &all)

	if err := cmd.Flags().Parse([]string{"-a"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if !all {
		t.Fatalf("expected -a to set target")
	}
}

func TestAddFlagsWithoutTarget(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	AddAllFlag(cmd, nil)
	AddJSONFlag(cmd, nil)

	if err := cmd.Flags().Parse([]string{"--all", "--json"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	for _, name := range []string{"all", "json"} {
		value, err := cmd.Flags().GetBool(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		if !value {
			t.Fatalf("expected --%s to be set", name)
		}
	}
}
