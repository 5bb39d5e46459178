package httphandler

type (
	CartLine struct {
		ProductID string  `json:"product_id"`
		SKU       string  `json:"sku"`
		Name      string  `json:"name"`
		PriceHT   int64   `json:"price_ht"`
		VATRate   float64 `json:"vat_rate"`
		Image     string  `json:"image,omitempty"`
		Brand     string  `json:"brand,omitempty"`
		Quantity  int     `json:"quantity"`
	}

	CartView struct {
		Lines      []CartLine `json:"lines"`
		ItemsCount int        `json:"items_count"`
		TotalHT    int64      `json:"total_ht"`
		TotalVAT   int64      `json:"total_vat"`
		TotalTTC   int64      `json:"total_ttc"`
	}

	SetQuantity struct {
		Quantity int `json:"quantity"`
	}
)

type (
	WishlistEntry struct {
		ProductID string  `json:"product_id"`
		SKU       string  `json:"sku"`
		Name      string  `json:"name"`
		PriceHT   int64   `json:"price_ht"`
		VATRate   float64 `json:"vat_rate"`
		Image     string  `json:"image,omitempty"`
		Brand     string  `json:"brand,omitempty"`
		AddedAt   int64   `json:"added_at,omitempty"`
	}

	ToggleResult struct {
		ProductID string `json:"product_id"`
		InList    bool   `json:"in_list"`
	}
)

type (
	ComparisonEntry struct {
		ProductID  string            `json:"product_id"`
		SKU        string            `json:"sku"`
		Name       string            `json:"name"`
		PriceHT    int64             `json:"price_ht"`
		VATRate    float64           `json:"vat_rate"`
		Image      string            `json:"image,omitempty"`
		Brand      string            `json:"brand,omitempty"`
		Category   string            `json:"category,omitempty"`
		Attributes map[string]string `json:"attributes,omitempty"`
	}

	ComparisonView struct {
		Entries    []ComparisonEntry `json:"entries"`
		CanAddMore bool              `json:"can_add_more"`
		MaxItems   int               `json:"max_items"`
	}
)

type (
	CheckoutRequest struct {
		Email         string         `json:"email"`
		FirstName     string         `json:"firstName"`
		LastName      string         `json:"lastName"`
		Address       string         `json:"address"`
		City          string         `json:"city"`
		PostalCode    string         `json:"postalCode"`
		Country       string         `json:"country"`
		Phone         string         `json:"phone"`
		PaymentMethod string         `json:"paymentMethod,omitempty"`
		Items         []CheckoutItem `json:"items"`
		TotalHT       float64        `json:"totalHT"`
		TotalTTC      float64        `json:"totalTTC"`
		VATAmount     float64        `json:"vatAmount"`
		ShippingCost  float64        `json:"shippingCost,omitempty"`
	}

	CheckoutItem struct {
		ProductID string  `json:"productId"`
		SKU       string  `json:"sku"`
		Name      string  `json:"name"`
		PriceHT   float64 `json:"priceHT"`
		VATRate   float64 `json:"vatRate"`
		Quantity  int     `json:"quantity"`
	}

	CheckoutResponse struct {
		Success bool   `json:"success"`
		OrderID string `json:"orderId"`
	}

	FieldError struct {
		Field  string `json:"field"`
		Reason string `json:"reason"`
	}

	ErrorResponse struct {
		Error  string       `json:"error"`
		Fields []FieldError `json:"fields,omitempty"`
	}
)
