package core

import "testing"

func TestFormatCode(t *testing.T) {
	tests := []struct {
		name   string
		entity string
		value  int
		want   string
	}{
		{name: "first employee", entity: EntityEmployee, value: 1, want: "EMP-001"},
		{name: "two digits", entity: EntityEmployee, value: 42, want: "EMP-042"},
		{name: "three digits", entity: EntityEmployee, value: 123, want: "EMP-123"},
		{name: "padding stops at three digits", entity: EntityEmployee, value: 1000, want: "EMP-1000"},
		{name: "other entity keeps its name", entity: "contract", value: 7, want: "contract-007"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCode(tc.entity, tc.value); got != tc.want {
				t.Fatalf("FormatCode(%q, %d) = %q, want %q", tc.entity, tc.value, got, tc.want)
			}
		})
	}
}
