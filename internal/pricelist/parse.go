package pricelist

import (
	"errors"

	"gopkg.in/yaml.v3"

	"shopapi/internal/domain"
)

// Record is one product entry of the catalog document:
//
//	- name: Chair
//	  category:
//	    name: Furniture
//	  product_info:
//	    quantity: 5
//	    price: 1000
//	    price_rrc: 1200
//	  product_parameter:
//	    - parameter: {name: Color}
//	      value: Red
type Record struct {
	Name     string `yaml:"name"`
	Category struct {
		Name string `yaml:"name"`
	} `yaml:"category"`
	Info struct {
		Quantity int `yaml:"quantity"`
		Price    int `yaml:"price"`
		PriceRRC int `yaml:"price_rrc"`
	} `yaml:"product_info"`
	Parameters []struct {
		Parameter struct {
			Name string `yaml:"name"`
		} `yaml:"parameter"`
		Value string `yaml:"value"`
	} `yaml:"product_parameter"`
}

// Parse decodes a catalog document. Every record must carry a product
// name, a category name and a non-negative quantity; price sanity is
// checked here so bad documents fail before touching the store.
func Parse(data []byte) ([]Record, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, &domain.ParseError{Err: err}
	}
	for i := range records {
		r := &records[i]
		if r.Name == "" {
			return nil, &domain.ParseError{Err: errors.New("record without a product name")}
		}
		if r.Category.Name == "" {
			return nil, &domain.ParseError{Err: errors.New("record " + r.Name + " without a category name")}
		}
		if r.Info.Quantity < 0 || r.Info.Price < 0 || r.Info.PriceRRC < 0 {
			return nil, &domain.ParseError{Err: errors.New("record " + r.Name + " with negative quantity or price")}
		}
	}
	return records, nil
}
