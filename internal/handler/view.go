package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hims-api/internal/listing"
)

// RespondView writes records as a listing view: a notice, a single record or
// a table.
func RespondView[T listing.Fielder](c *gin.Context, records []T) {
	c.JSON(http.StatusOK, NewSuccessResponse(listing.Render(listing.Collect(records))))
}

// RespondTable writes records as a table even when there is only one.
func RespondTable[T listing.Fielder](c *gin.Context, records []T) {
	c.JSON(http.StatusOK, NewSuccessResponse(listing.RenderTable(listing.Collect(records))))
}

// ViewListing is the ?view= value asking for a record's label/value listing
// instead of its JSON object.
const ViewListing = "listing"

// RespondRecord writes one record as its JSON object, or as the label/value
// listing when the request carries ?view=listing.
func RespondRecord[T listing.Fielder](c *gin.Context, record T) {
	if c.Query("view") == ViewListing {
		c.JSON(http.StatusOK, NewSuccessResponse(listing.Render([][]listing.Field{record.Fields()})))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(record))
}

// RespondCSV streams records as a CSV attachment named name.csv. header
// supplies the column titles when there are no records.
func RespondCSV[T listing.Fielder](c *gin.Context, name string, header []listing.Field, records []T) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, name))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := listing.WriteCSV(c.Writer, header, listing.Collect(records)); err != nil {
		_ = c.Error(err)
	}
}

// ConfirmToken returns the token authorizing the second step of a deletion.
func ConfirmToken(c *gin.Context) string {
	return c.GetHeader(HeaderConfirmToken)
}
