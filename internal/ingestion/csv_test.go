package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := `Company,Job Title,Locations,URL,Job Type,Category
Acme,Backend Engineer,Remote,https://example.com/1,Full-Time,SWE
Globex,ML Intern,"Boston, MA",https://example.com/2,Internship,ML/AI
`
	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme", rows[0]["company"])
	assert.Equal(t, "Backend Engineer", rows[0]["job_title"])
	assert.Equal(t, "https://example.com/1", rows[0]["url"])
	assert.Equal(t, "Boston, MA", rows[1]["locations"])
	assert.Equal(t, "ML/AI", rows[1]["category"])
}

func TestParseCSV_EmptyInputIsBatchFatal(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)

	var be *BatchError
	assert.ErrorAs(t, err, &be)
}

func TestParseCSV_HeaderOnlyIsBatchFatal(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("company,job_title,locations,url,job_type,category\n"))
	require.Error(t, err)

	var be *BatchError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, be.Error(), "no data rows")
}

func TestParseCSV_MalformedRecordIsBatchFatal(t *testing.T) {
	input := "company,job_title\nAcme,\"unterminated\n"
	_, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)

	var be *BatchError
	assert.ErrorAs(t, err, &be)
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://example.com/jobs/1"))
	assert.NoError(t, ValidateURL("http://example.com"))
	assert.Error(t, ValidateURL(""))
	assert.Error(t, ValidateURL("example.com/jobs"))
	assert.Error(t, ValidateURL("ftp://example.com"))
	assert.Error(t, ValidateURL("https://"))
}
