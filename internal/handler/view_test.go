package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hims-api/internal/listing"
)

type summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s summary) Fields() []listing.Field {
	return []listing.Field{
		listing.Text("Doctor ID", s.ID),
		listing.Text("Name", s.Name),
	}
}

func serve(t *testing.T, target string, fn func(c *gin.Context)) json.RawMessage {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	fn(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestRespondRecord(t *testing.T) {
	rec := &summary{ID: "DR-452310-240301", Name: "Dr. Rao"}

	var got summary
	require.NoError(t, json.Unmarshal(serve(t, "/doctors/x", func(c *gin.Context) { RespondRecord(c, rec) }), &got))
	assert.Equal(t, *rec, got)

	var view listing.View
	require.NoError(t, json.Unmarshal(serve(t, "/doctors/x?view=listing", func(c *gin.Context) { RespondRecord(c, rec) }), &view))
	assert.Equal(t, listing.KindRecord, view.Kind)
	require.Len(t, view.Fields, 2)
	assert.Equal(t, "Name", view.Fields[1].Title)
	assert.Equal(t, "Dr. Rao", *view.Fields[1].Value)
}

func TestRespondTableWithOneRow(t *testing.T) {
	rows := []summary{{ID: "DR-452310-240301", Name: "Dr. Rao"}}

	var view listing.View
	require.NoError(t, json.Unmarshal(serve(t, "/", func(c *gin.Context) { RespondTable(c, rows) }), &view))
	assert.Equal(t, listing.KindTable, view.Kind)
	assert.Equal(t, []string{"Doctor ID", "Name"}, view.Columns)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Dr. Rao", *view.Rows[0][1])
}
