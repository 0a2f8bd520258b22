package record_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/recordgate/recordgate/record"
)

func Test_Record_SetPreservesInsertionOrder(t *testing.T) {
	rec := record.New().
		Set("name", record.String("John Doe")).
		Set("email", record.String("john@example.com")).
		Set("age", record.Number(30))

	// replacing a value must not move the field
	rec.Set("name", record.String("Jane Smith"))

	fields := rec.Fields()
	require.Len(t, fields, 3)
	require.Equal(t, "name", fields[0].Name)
	require.Equal(t, "email", fields[1].Name)
	require.Equal(t, "age", fields[2].Name)
	require.Equal(t, "Jane Smith", fields[0].Value.Text())
}

func Test_Record_Get(t *testing.T) {
	rec := record.New().Set("city", record.String("London"))

	v, ok := rec.Get("city")
	require.True(t, ok)
	require.Equal(t, "London", v.Text())

	_, ok = rec.Get("country")
	require.False(t, ok)
}

func Test_Record_CloneIsIndependent(t *testing.T) {
	rec := record.New().Set("name", record.String("John Doe"))

	clone := rec.Clone()
	clone.Set("name", record.String("Jane Smith"))
	clone.Set("extra", record.Bool(true))

	v, _ := rec.Get("name")
	require.Equal(t, "John Doe", v.Text())
	require.Equal(t, 1, rec.Len())
	require.Equal(t, 2, clone.Len())
}

func Test_Record_Validate(t *testing.T) {
	var nilRec *record.Record

	require.ErrorIs(t, nilRec.Validate(), record.ErrInvalid)

	rec := record.New().Set("", record.String("x"))
	require.ErrorIs(t, rec.Validate(), record.ErrInvalid)

	ok := record.New().Set("name", record.String("x"))
	require.NoError(t, ok.Validate())
	require.NoError(t, record.New().Validate())
}

func Test_Value_Text(t *testing.T) {
	require.Equal(t, "John Doe", record.String("John Doe").Text())
	require.Equal(t, "30", record.Number(30).Text())
	require.Equal(t, "25.5", record.Number(25.5).Text())
	require.Equal(t, "true", record.Bool(true).Text())
	require.Equal(t, "false", record.Bool(false).Text())
}

func Test_Record_JSONRoundTrip(t *testing.T) {
	rec := record.New().
		Set("name", record.String("John Doe")).
		Set("age", record.Number(30)).
		Set("active", record.Bool(true))

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	got := record.New()
	require.NoError(t, json.Unmarshal(data, got))

	require.Equal(t, rec.Fields(), got.Fields())
}

func Test_Record_UnmarshalRejectsUnknownKind(t *testing.T) {
	raw := `[{"name":"x","kind":"blob","value":"y"}]`

	rec := record.New()
	err := json.Unmarshal([]byte(raw), rec)
	require.ErrorIs(t, err, record.ErrInvalid)
}
