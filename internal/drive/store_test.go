package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "file view link",
			url:  "https://drive.google.com/file/d/1AbC_dEf-123/view",
			want: "1AbC_dEf-123",
		},
		{
			name: "file view link with query",
			url:  "https://drive.google.com/file/d/1AbC_dEf-123/view?usp=sharing",
			want: "1AbC_dEf-123",
		},
		{
			name: "short d link",
			url:  "https://drive.google.com/d/1AbC_dEf-123/edit",
			want: "1AbC_dEf-123",
		},
		{
			name: "open with id param",
			url:  "https://drive.google.com/open?id=1AbC_dEf-123",
			want: "1AbC_dEf-123",
		},
		{
			name: "uc download link",
			url:  "https://drive.google.com/uc?export=download&id=1AbC_dEf-123",
			want: "1AbC_dEf-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FileIDFromURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileIDFromURL_Invalid(t *testing.T) {
	tests := []string{
		"",
		"not a url",
		"https://drive.google.com/",
		"https://drive.google.com/drive/folders/abc/def",
	}
	for _, urlStr := range tests {
		_, err := FileIDFromURL(urlStr)
		assert.Error(t, err, "url %q", urlStr)
	}
}
