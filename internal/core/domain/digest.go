package domain

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// taskDigest computes a deterministic content hash of a task, independent of
// its filesystem path and of map iteration order. Two manifests with the same
// canonical content hash equal regardless of where they were discovered.
func taskDigest(t *Task) uint64 {
	d := xxhash.New()

	writeField(d, "name", t.Name.String())
	writeField(d, "description", t.Description)

	keys := make([]string, 0, len(t.Env))
	for k := range t.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeField(d, "env:"+k, t.Env[k])
	}

	writeField(d, "run.interpreter", t.Run.Interpreter)
	writeField(d, "run.script", t.Run.Script)
	writeField(d, "run.command", t.Run.Command)

	writeField(d, "test_cases", strconv.Itoa(len(t.TestCases)))
	for i, tc := range t.TestCases {
		writeField(d, "test_case:"+strconv.Itoa(i), strings.Join(tc.Verify, " "))
	}

	return d.Sum64()
}

func writeField(d *xxhash.Digest, field, value string) {
	_, _ = d.WriteString(field)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(value)
	_, _ = d.WriteString("\x1e")
}
