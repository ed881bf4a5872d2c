package listing

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id   string
	name string
	alt  *string
}

func (r row) Fields() []Field {
	return []Field{
		Text("Department ID", r.id),
		Text("Department name", r.name),
		Optional("Alternate contact number", r.alt),
	}
}

func TestRenderEmpty(t *testing.T) {
	view := Render(nil)
	assert.Equal(t, KindEmpty, view.Kind)
	assert.Equal(t, NoDataNotice, view.Notice)
	assert.Empty(t, view.Rows)
}

func TestRenderSingleRecord(t *testing.T) {
	view := Render(Collect([]row{{id: "D-1", name: "Cardiology"}}))

	assert.Equal(t, KindRecord, view.Kind)
	require.Len(t, view.Fields, 3)
	assert.Equal(t, "Department ID", view.Fields[0].Title)
	assert.Equal(t, "Cardiology", *view.Fields[1].Value)
	assert.Nil(t, view.Fields[2].Value)
}

func TestRenderTable(t *testing.T) {
	alt := "0123"
	view := Render(Collect([]row{
		{id: "D-1", name: "Cardiology"},
		{id: "D-2", name: "Neurology", alt: &alt},
	}))

	assert.Equal(t, KindTable, view.Kind)
	assert.Equal(t, []string{"Department ID", "Department name", "Alternate contact number"}, view.Columns)
	require.Len(t, view.Rows, 2)
	assert.Nil(t, view.Rows[0][2])
	assert.Equal(t, "0123", *view.Rows[1][2])
}

func TestRenderTableKeepsSingleRowTabular(t *testing.T) {
	view := RenderTable(Collect([]row{{id: "D-1", name: "Cardiology"}}))

	assert.Equal(t, KindTable, view.Kind)
	assert.Equal(t, []string{"Department ID", "Department name", "Alternate contact number"}, view.Columns)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "D-1", *view.Rows[0][0])
	assert.Empty(t, view.Fields)

	assert.Equal(t, KindEmpty, RenderTable(nil).Kind)
}

func TestRenderJSONShape(t *testing.T) {
	body, err := json.Marshal(Render(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"empty","notice":"No data to show"}`, string(body))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil, Collect([]row{
		{id: "D-1", name: "Cardiology"},
		{id: "D-2", name: "Ear, Nose and Throat"},
	}))
	require.NoError(t, err)

	expected := "Department ID,Department name,Alternate contact number\n" +
		"D-1,Cardiology,\n" +
		"D-2,\"Ear, Nose and Throat\",\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, row{}.Fields(), nil))
	assert.Equal(t, "Department ID,Department name,Alternate contact number\n", buf.String())
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "23", *Number("Age", 23).Value)
	assert.Equal(t, "0", *Number("Cost (INR)", 0).Value)
}
