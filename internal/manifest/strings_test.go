package manifest

import "testing"

// TestStringTableResolve tests symbolic reference resolution.
func TestStringTableResolve(t *testing.T) {
	t.Parallel()

	table := StringTable{
		"app_name":  "Example App",
		"link_host": "example.com",
		"empty":     "",
	}

	testCases := []struct {
		name     string
		value    string
		expected string
	}{
		{"known reference", "@string/app_name", "Example App"},
		{"known reference with dot", "@string/link_host", "example.com"},
		{"known empty value", "@string/empty", ""},
		{"unknown reference passes through unchanged", "@string/missing", "@string/missing"},
		{"literal value passes through", "android.permission.CAMERA", "android.permission.CAMERA"},
		{"empty value passes through", "", ""},
		{"partial prefix is not a reference", "@strings/app_name", "@strings/app_name"},
		{"reference with trailing text is not resolved", "@string/app_name extra", "@string/app_name extra"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := table.Resolve(tc.value); got != tc.expected {
				t.Errorf("Resolve(%q) = %q, expected %q", tc.value, got, tc.expected)
			}
		})
	}
}

// TestStringTableResolveEmptyTable tests that resolution against an empty
// table never fails and returns the original token.
func TestStringTableResolveEmptyTable(t *testing.T) {
	t.Parallel()

	var table StringTable

	if got := table.Resolve("@string/anything"); got != "@string/anything" {
		t.Errorf("expected passthrough, got %q", got)
	}
	if got := table.Resolve("plain"); got != "plain" {
		t.Errorf("expected passthrough, got %q", got)
	}
}
