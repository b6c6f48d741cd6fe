package catalog

// Tags for the closed document-type set.
const (
	TypeFlight = "flight"
	TypeTrain  = "train"
	TypeHotel  = "hotel"
	TypeCar    = "car"
	TypeID     = "id"
	TypeOther  = "other"
)

// DocumentType maps a type tag to its display metadata and the ordered
// field keys a manual entry of that type asks for.
type DocumentType struct {
	Tag    string
	Label  string
	Icon   string
	Color  string
	Fields []string
}

var documentTypes = []DocumentType{
	{Tag: TypeFlight, Label: "Flight Ticket", Icon: "airplane", Color: "#FF6B6B", Fields: []string{"airline", "from", "to", "date", "seat"}},
	{Tag: TypeTrain, Label: "Train Ticket", Icon: "train", Color: "#4ECDC4", Fields: []string{"from", "to", "date", "seat"}},
	{Tag: TypeHotel, Label: "Hotel Booking", Icon: "business", Color: "#45B7D1", Fields: []string{"property", "location", "checkin", "checkout"}},
	{Tag: TypeCar, Label: "Car Rental", Icon: "car", Color: "#96CEB4", Fields: []string{"company", "pickup", "dropoff", "date"}},
	{Tag: TypeID, Label: "Valid ID", Icon: "card", Color: "#FECA57", Fields: []string{"number", "issued", "expires"}},
	{Tag: TypeOther, Label: "Other", Icon: "document", Color: "#778CA3", Fields: []string{"description", "date"}},
}

// fieldLabels is shared across types; several schemas reuse keys like date.
var fieldLabels = map[string]string{
	"airline":     "Airline",
	"from":        "From",
	"to":          "To",
	"date":        "Date",
	"seat":        "Seat",
	"property":    "Hotel",
	"location":    "Location",
	"checkin":     "Check-in",
	"checkout":    "Check-out",
	"company":     "Rental Company",
	"pickup":      "Pick-up",
	"dropoff":     "Drop-off",
	"number":      "Document Number",
	"issued":      "Issued",
	"expires":     "Expires",
	"description": "Description",
}

// Types returns the registry entries in display order.
func Types() []DocumentType {
	out := make([]DocumentType, len(documentTypes))
	copy(out, documentTypes)
	return out
}

// SchemaFor is total: a tag outside the closed set gets the generic icon
// and accent with the raw tag passed through as its label, so records with
// unknown types keep rendering instead of crashing the list.
func SchemaFor(tag string) DocumentType {
	for _, dt := range documentTypes {
		if dt.Tag == tag {
			return dt
		}
	}

	fallback := documentTypes[len(documentTypes)-1]
	return DocumentType{
		Tag:   tag,
		Label: tag,
		Icon:  fallback.Icon,
		Color: fallback.Color,
	}
}

// FieldsFor returns the ordered field keys used for form generation and
// preview ordering. Unknown tags have no schema.
func FieldsFor(tag string) []string {
	return SchemaFor(tag).Fields
}

// LabelFor resolves a field key to its display label, falling back to the
// raw key for anything unmapped.
func LabelFor(fieldKey string) string {
	if label, ok := fieldLabels[fieldKey]; ok {
		return label
	}
	return fieldKey
}
