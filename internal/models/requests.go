package models

// DummyPlan используется для приёма данных плана из JSON-запроса,
// прежде чем конвертировать их в Plan.
type DummyPlan struct {
	Name       string   `json:"name" validate:"required"`        // Название плана
	Price      float64  `json:"price" validate:"gte=0"`          // Цена (>= 0)
	PriceUnit  string   `json:"priceUnit" validate:"required"`   // Единица цены: UF, USD или CLP
	IsFreemium bool     `json:"isFreemium"`                      // Признак бесплатного плана
	Features   []string `json:"features"`                        // Список возможностей
}

// DummyUser используется для приёма данных пользователя из JSON-запроса.
type DummyUser struct {
	Name     string `json:"name" validate:"required"`                      // Имя пользователя
	Email    string `json:"email" validate:"required,email"`               // Email
	Password string `json:"password" validate:"required,min=6"`            // Пароль (хэшируется перед сохранением)
	Role     string `json:"role" validate:"required,oneof=admin customer"` // Роль
	PlanID   *int   `json:"planId"`                                        // Назначенный план (опционально)
}

// DummyUserUpdate используется для частичного обновления пользователя:
// nil-поля не изменяются.
type DummyUserUpdate struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Role   *string `json:"role" validate:"omitempty,oneof=admin customer"`
	PlanID *int    `json:"planId"`
}

// DummyPlanUpdate используется для частичного обновления плана.
type DummyPlanUpdate struct {
	Name       *string   `json:"name"`
	Price      *float64  `json:"price" validate:"omitempty,gte=0"`
	PriceUnit  *string   `json:"priceUnit"`
	IsFreemium *bool     `json:"isFreemium"`
	Features   *[]string `json:"features"`
}

// DummyResetPassword используется для запроса смены пароля.
type DummyResetPassword struct {
	Password string `json:"password" validate:"required,min=6"` // Новый пароль
}

// DummyAssignPlan используется для запроса назначения плана пользователю.
type DummyAssignPlan struct {
	PlanID int `json:"planId" validate:"required,gt=0"` // Назначаемый план
}

// DummyCheckout используется для приёма данных оформления покупки.
type DummyCheckout struct {
	UserID        int    `json:"userId" validate:"required,gt=0"`                           // Покупатель
	PlanID        int    `json:"planId" validate:"required,gt=0"`                           // Приобретаемый план
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=card transfer"`     // Способ оплаты
	CardNumber    string `json:"cardNumber" validate:"omitempty,min=13,max=19,numeric"`     // Номер карты (сохраняются последние 4 цифры)
	DueInDays     int    `json:"dueInDays" validate:"omitempty,gte=0"`                      // Срок оплаты в днях (0 — без срока)
}

// DummyLogin используется для приёма учётных данных при входе.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
