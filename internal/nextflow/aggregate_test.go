package nextflow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregate(t *testing.T) {
	man := Manifest{MainScript: "main.nf", Authors: []string{}}
	got := Aggregate(
		[]string{"conf/base.config", "conf/base.config"},
		man,
		[]string{"bin/run.sh"},
		[]string{},
		[]string{"main.nf", "modules/fastqc.nf"},
	)
	want := []string{"bin/run.sh", "conf/base.config", "main.nf", "modules/fastqc.nf"}
	if diff := cmp.Diff(want, got.Sorted()); diff != "" {
		t.Errorf("Aggregate mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_MainScriptOnly(t *testing.T) {
	got := Aggregate(nil, ReadManifest(nil))
	if got.Len() != 1 || !got.Contains("main.nf") {
		t.Errorf("Aggregate = %v, want [main.nf]", got.Sorted())
	}
}

func TestAggregate_CleansPaths(t *testing.T) {
	man := Manifest{MainScript: "./main.nf"}
	got := Aggregate([]string{"main.nf", "conf//base.config", "./conf/base.config"}, man)
	want := []string{"conf/base.config", "main.nf"}
	if diff := cmp.Diff(want, got.Sorted()); diff != "" {
		t.Errorf("Aggregate mismatch (-want +got):\n%s", diff)
	}
}
