package domain

import "time"

// Frequency периодичность приёма лекарства
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyAsNeeded Frequency = "as_needed"
)

// DoseRecord отметка о принятой дозе
type DoseRecord struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Medication лекарство пользователя
type Medication struct {
	ID                string       `json:"id"`
	Name              string       `json:"name" validate:"required"`
	Dosage            string       `json:"dosage" validate:"required"`
	Form              string       `json:"form"`
	Frequency         Frequency    `json:"frequency" validate:"required,oneof=daily weekly monthly as_needed"`
	Times             []string     `json:"times" validate:"dive,hhmm"`
	Stock             int          `json:"stock" validate:"gte=0"`
	LowStockThreshold int          `json:"lowStockThreshold" validate:"gte=0"`
	Instructions      string       `json:"instructions,omitempty"`
	StartDate         string       `json:"startDate"`
	EndDate           string       `json:"endDate,omitempty"`
	ImageURI          string       `json:"imageUri,omitempty"`
	Active            bool         `json:"active"`
	TakenHistory      []DoseRecord `json:"takenHistory,omitempty"`
}

// IsLowStock запас на пороге или ниже, учитываются только активные лекарства
func (m Medication) IsLowStock() bool {
	return m.Active && m.Stock <= m.LowStockThreshold
}

// LowStockEntry лекарство с низким запасом и признаком заказа в пути
type LowStockEntry struct {
	Medication Medication `json:"medication"`
	IsOnTheWay bool       `json:"isOnTheWay"`
}

// PharmacyProduct товар в аптеке
type PharmacyProduct struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	Price                float64 `json:"price"`
	ImageURL             string  `json:"imageUrl,omitempty"`
	Category             string  `json:"category"`
	InStock              bool    `json:"inStock"`
	RequiresPrescription bool    `json:"requiresPrescription"`
}

// CartItem позиция в корзине, цена фиксируется в момент добавления
type CartItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid известный статус
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Open заказ ещё не доставлен и не отменён
func (s OrderStatus) Open() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing || s == OrderStatusShipped
}

// OrderItem позиция в заказе
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Order сущность заказа
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	Date            time.Time   `json:"date"`
	ShippingAddress string      `json:"shippingAddress"`
}

// Contains в заказе есть позиция с этим товаром
func (o Order) Contains(productID string) bool {
	for _, it := range o.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

// User локальный пользователь приложения
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	SavedAddresses []string  `json:"savedAddresses,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
