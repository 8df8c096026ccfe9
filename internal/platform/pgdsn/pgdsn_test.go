package pgdsn

import (
	"strings"
	"testing"
)

func TestDisableBinaryResults(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "url gets flag",
			in:   "postgres://u:p@localhost:5432/peaks_baseball?sslmode=disable",
			want: "disable_prepared_binary_result=yes",
		},
		{
			name: "keyword form gets flag",
			in:   "host=localhost dbname=peaks_baseball sslmode=disable",
			want: "host=localhost dbname=peaks_baseball sslmode=disable disable_prepared_binary_result=yes",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DisableBinaryResults(tc.in); !strings.Contains(got, tc.want) {
				t.Fatalf("expected %q in %q", tc.want, got)
			}
		})
	}
}

func TestDisableBinaryResults_KeepsExplicitValue(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"postgres://u:p@localhost:5432/peaks_baseball?disable_prepared_binary_result=no",
		"host=localhost disable_prepared_binary_result=no",
		"",
	} {
		if got := DisableBinaryResults(in); got != in {
			t.Fatalf("expected %q unchanged, got %q", in, got)
		}
	}
}

func TestDatabase(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"postgres://u:p@localhost:5432/peaks_baseball?sslmode=disable": "peaks_baseball",
		"postgresql://localhost/":                                      "",
		"host=localhost user=postgres dbname='peaks_baseball'":         "peaks_baseball",
		"host=localhost": "",
	}
	for in, want := range cases {
		if got := Database(in); got != want {
			t.Fatalf("Database(%q) = %q, want %q", in, got, want)
		}
	}
}
