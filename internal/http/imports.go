package http

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"gorm.io/gorm"

	"github.com/Sberg18/admin-financiera-sb-sub000/internal/database"
	"github.com/Sberg18/admin-financiera-sb-sub000/internal/models"
)

const importSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["expenses"],
  "properties": {
    "expenses": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["amount", "payment_method", "purchase_date"],
        "properties": {
          "description": {"type": "string"},
          "amount": {"type": "number", "exclusiveMinimum": 0},
          "currency": {"type": "string"},
          "payment_method": {"type": "string", "enum": ["cash", "debit_card", "credit_card"]},
          "category_id": {"type": "integer", "minimum": 0},
          "credit_card_id": {"type": "integer", "minimum": 1},
          "purchase_date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
          "installments": {"type": "integer", "minimum": 1, "maximum": 60},
          "tags": {"type": "array", "items": {"type": "string"}},
          "notes": {"type": "string"}
        }
      }
    }
  }
}`

// POST /v1/expenses/import
//
// Bulk creation for migrating records from a spreadsheet or another
// tracker. The payload is schema-checked up front and every row goes
// through the same expansion path as a single POST; the whole import is
// one transaction.
func (s *Server) importExpenses(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "failed_to_read_body"})
		return
	}

	res, err := s.importSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_json"})
		return
	}
	if !res.Valid() {
		d := []string{}
		for _, e := range res.Errors() {
			d = append(d, e.String())
		}
		c.JSON(422, gin.H{"error": "schema_invalid", "details": d})
		return
	}

	var payload struct {
		Expenses []expenseInput `json:"expenses"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(400, gin.H{"error": "invalid_json"})
		return
	}

	var rows []models.Expense
	for i, input := range payload.Expenses {
		expanded, status, code := s.expenseRows(userID, input)
		if code != "" {
			c.JSON(status, gin.H{"error": code, "index": i})
			return
		}
		rows = append(rows, expanded...)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, gin.H{"imported": len(payload.Expenses), "rows_created": len(rows)})
}
