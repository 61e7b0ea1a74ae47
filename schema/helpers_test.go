package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRepoDir(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"spring-projects/spring-boot", "spring-projects_spring-boot"},
		{"elastic/elasticsearch", "elastic_elasticsearch"},
		{"owner/name/extra", "owner_name_extra"}, // nested separators collapse
		{"  owner/name  ", "owner_name"},         // surrounding whitespace
		{"owner name", "owner_name"},             // embedded space
		{"owner\\name", "owner_name"},            // windows-style separator
		{"owner//name", "owner_name"},            // doubled separator
		{"/owner/name/", "owner_name"},           // leading/trailing separators
		{"plain", "plain"},                       // already safe
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeRepoDir(tt.name))
		})
	}
}

func TestSanitizeRepoDirNotInjective(t *testing.T) {
	// Distinct identifiers can sanitize to the same label, which is why the
	// analyzer never uses the label as the sole path component.
	assert.Equal(t, SanitizeRepoDir("a_b/c"), SanitizeRepoDir("a/b_c"))
}

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		input     string
		wantOwner string
		wantName  string
		wantOK    bool
	}{
		{"apache/kafka", "apache", "kafka", true},
		{"kafka", "", "", false},
		{"a/b/c", "", "", false},
		{"/b", "", "", false},
		{"a/", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			owner, name, ok := SplitFullName(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestFormatFloatPtr(t *testing.T) {
	assert.Equal(t, "", FormatFloatPtr(nil))
	assert.Equal(t, "22", FormatFloatPtr(Float64Ptr(22)))
	assert.Equal(t, "3.5", FormatFloatPtr(Float64Ptr(3.5)))
	assert.Equal(t, "0", FormatFloatPtr(Float64Ptr(0)))
}
