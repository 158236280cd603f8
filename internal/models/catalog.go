// Package models содержит доменные структуры каталога портала: тарифные планы,
// пользователей, подписки и счета, а также вспомогательные типы для приёма
// данных из JSON-запросов.
package models

import "time"

// Роли пользователей портала.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Статусы счетов.
const (
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// Plan представляет собой тарифный план из каталога.
// Цена указывается в единице PriceUnit (UF, USD или CLP),
// бесплатные планы помечаются IsFreemium.
type Plan struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Price      float64  `json:"price"`
	PriceUnit  string   `json:"priceUnit"`
	IsFreemium bool     `json:"isFreemium"`
	Features   []string `json:"features"`
}

// User представляет собой пользователя портала.
// PlanID равен nil, пока пользователю не назначен план.
// Пароль хранится только в виде bcrypt-хэша.
type User struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"passwordHash"`
	Role           string     `json:"role"`
	PlanID         *int       `json:"planId"`
	TrialActive    bool       `json:"trialActive,omitempty"`
	TrialStartDate *time.Time `json:"trialStartDate,omitempty"`
	TrialEndDate   *time.Time `json:"trialEndDate,omitempty"`
}

// Subscription связывает пользователя с назначенным ему планом.
// На пользователя существует не более одной записи: при повторном
// назначении плана запись обновляется, а не добавляется.
type Subscription struct {
	ID              int       `json:"id"`
	UserID          int       `json:"userId"`
	PlanID          int       `json:"planId"`
	StartDate       time.Time `json:"startDate"`
	LastUpdatedDate time.Time `json:"lastUpdatedDate"`
	TrialActive     bool      `json:"trialActive"`
	TrialConsumed   bool      `json:"trialConsumed"`
}

// Invoice представляет собой счёт за оформленную покупку.
// Запись неизменяема после создания: операций обновления и удаления нет.
type Invoice struct {
	ID            int        `json:"id"`
	InvoiceNumber string     `json:"invoiceNumber"`
	UserID        int        `json:"userId"`
	UserName      string     `json:"userName"`
	UserEmail     string     `json:"userEmail"`
	PlanID        int        `json:"planId"`
	PlanName      string     `json:"planName"`
	PriceUF       float64    `json:"priceUF"`
	PriceCLP      *int64     `json:"priceCLP"`
	CurrencyUnit  string     `json:"currencyUnit"`
	PurchaseDate  time.Time  `json:"purchaseDate"`
	DueDate       *time.Time `json:"dueDate"`
	PaymentMethod string     `json:"paymentMethod"`
	Last4Digits   *string    `json:"last4Digits"`
	Status        string     `json:"status"`
}

// PlanLimits описывает ограничения тарифного плана.
// Значение -1 означает «без ограничений».
type PlanLimits struct {
	MaxUsers       int    `json:"maxUsers"`
	MaxWarehouses  int    `json:"maxWarehouses"`
	MaxProducts    int    `json:"maxProducts"`
	ReportsTier    string `json:"reportsTier"`
	SupportTier    string `json:"supportTier"`
	HasAIAssistant bool   `json:"hasAIAssistant"`
}
