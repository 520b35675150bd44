package domain

import "time"

// Статусы заказа. Success и Failed — терминальные; Pending может
// обновляться колбэками шлюза.
type OrderStatus string

const (
	OrderPending OrderStatus = "Pending"
	OrderSuccess OrderStatus = "Success"
	OrderFailed  OrderStatus = "Failed"
)

// Order — одна попытка покупки. Журнал заказов append-only:
// записи никогда не удаляются, меняется только статус.
type Order struct {
	OrderID       string      `json:"trxId"`
	ProductName   string      `json:"productName"`
	VariantName   string      `json:"variantName"`
	Amount        int64       `json:"amount"`
	Status        OrderStatus `json:"status"`
	UserEmail     string      `json:"userEmail"`
	UserID        string      `json:"userId"`
	ZoneID        string      `json:"zoneId,omitempty"`
	PaymentMethod string      `json:"paymentMethod"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// PaymentMethod — статический справочник способов оплаты.
type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Fee  int64  `json:"fee"`
}

// PaymentRequest — выбор пользователя, поступающий в оркестратор платежей.
type PaymentRequest struct {
	ProductName string        `json:"productName"`
	UserID      string        `json:"userId"`
	ZoneID      string        `json:"zoneId,omitempty"`
	UserEmail   string        `json:"userEmail,omitempty"`
	Variant     Variant       `json:"variant"`
	Method      PaymentMethod `json:"method"`
}

// TotalAmount — цена варианта плюс комиссия способа оплаты.
func (p PaymentRequest) TotalAmount() int64 { return p.Variant.Price + p.Method.Fee }

// GatewayStatus — ответ шлюза на опрос статуса транзакции.
type GatewayStatus struct {
	StatusCode        string `json:"status_code"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status,omitempty"`
}
