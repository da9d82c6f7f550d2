package catalog

import (
	"encoding/json"
	"fmt"
)

type ProductType string

const (
	ProductTypeStandard    ProductType = "STANDARD"
	ProductTypeBook        ProductType = "BOOK"
	ProductTypeElectronics ProductType = "ELECTRONICS"
	ProductTypeTool        ProductType = "TOOL"
	ProductTypeFood        ProductType = "FOOD"
)

func ProductTypes() []ProductType {
	return []ProductType{
		ProductTypeStandard,
		ProductTypeBook,
		ProductTypeElectronics,
		ProductTypeTool,
		ProductTypeFood,
	}
}

func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeStandard,
		ProductTypeBook,
		ProductTypeElectronics,
		ProductTypeTool,
		ProductTypeFood:
		return true
	default:
		return false
	}
}

const (
	fieldID   = "id"
	fieldName = "name"
	fieldType = "type"
)

// Product is a catalog entry. ID is nil until the server assigns one.
// Attributes keeps any other server-defined field untouched so a product
// can be read, changed and written back without losing data.
type Product struct {
	ID         *int
	Name       string
	Type       ProductType
	Attributes map[string]json.RawMessage
}

func (p Product) WithID(id int) Product {
	p.ID = &id
	return p
}

// WithoutID returns a copy of p as it would be submitted for creation.
func (p Product) WithoutID() Product {
	p.ID = nil
	return p
}

func (p Product) String() string {
	if p.ID == nil {
		return fmt.Sprintf("%s (%s)", p.Name, p.Type)
	}
	return fmt.Sprintf("#%d %s (%s)", *p.ID, p.Name, p.Type)
}

func (p Product) MarshalJSON() ([]byte, error) {

	raw := make(map[string]any, len(p.Attributes)+3)

	for k, v := range p.Attributes {
		raw[k] = v
	}

	// fixed fields overwrite any attribute with the same key
	raw[fieldID] = p.ID
	raw[fieldName] = p.Name
	raw[fieldType] = p.Type

	return json.Marshal(raw)
}

func (p *Product) UnmarshalJSON(data []byte) (err error) {

	var raw map[string]json.RawMessage
	err = json.Unmarshal(data, &raw)
	if err != nil {
		return
	}

	var res Product

	if v, ok := raw[fieldID]; ok {
		err = json.Unmarshal(v, &res.ID)
		if err != nil {
			return fmt.Errorf("product field '%s': %w", fieldID, err)
		}
		delete(raw, fieldID)
	}

	if v, ok := raw[fieldName]; ok {
		err = json.Unmarshal(v, &res.Name)
		if err != nil {
			return fmt.Errorf("product field '%s': %w", fieldName, err)
		}
		delete(raw, fieldName)
	}

	if v, ok := raw[fieldType]; ok {
		err = json.Unmarshal(v, &res.Type)
		if err != nil {
			return fmt.Errorf("product field '%s': %w", fieldType, err)
		}
		delete(raw, fieldType)
	}

	if len(raw) > 0 {
		res.Attributes = raw
	}

	*p = res
	return
}
