package pricelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/internal/domain"
)

func TestParse(t *testing.T) {
	doc := []byte(`
- name: Chair
  category:
    name: Furniture
  product_info:
    quantity: 5
    price: 1000
  product_parameter:
    - parameter:
        name: Color
      value: Red
- name: Lamp
  category:
    name: Electronics
  product_info:
    quantity: 2
    price: 450
    price_rrc: 500
`)
	records, err := Parse(doc)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Chair", records[0].Name)
	assert.Equal(t, "Furniture", records[0].Category.Name)
	assert.Equal(t, 5, records[0].Info.Quantity)
	require.Len(t, records[0].Parameters, 1)
	assert.Equal(t, "Color", records[0].Parameters[0].Parameter.Name)
	assert.Equal(t, "Red", records[0].Parameters[0].Value)

	assert.Equal(t, 500, records[1].Info.PriceRRC)
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string]string{
		"not yaml":          "{broken: [",
		"missing name":      "- category: {name: Furniture}",
		"missing category":  "- name: Chair",
		"negative quantity": "- name: Chair\n  category: {name: Furniture}\n  product_info: {quantity: -1, price: 10}",
	}
	for label, doc := range cases {
		_, err := Parse([]byte(doc))
		var parseErr *domain.ParseError
		require.ErrorAs(t, err, &parseErr, label)
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "goods.yml",
		Filename("https://files.example/d/abc?filename=goods.yml&disposition=attachment"))
	assert.Equal(t, "pricelist.yaml", Filename("https://files.example/d/abc"))
	assert.Equal(t, "evil.yml", Filename("https://files.example/d?filename=..%2F..%2Fevil.yml"))
}
