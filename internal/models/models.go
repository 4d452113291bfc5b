package models

import (
	"time"
)

// Envelope is the {message, data} wrapper around every backend response.
type Envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// List is the collection form of Envelope.
type List[T any] struct {
	Message string `json:"message"`
	Data    []T    `json:"data"`
}

type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID                 int         `json:"id"`
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	Price              float64     `json:"price"`
	DiscountPercentage float64     `json:"discount_percentage"`
	Rating             float64     `json:"rating"`
	Stock              int         `json:"stock"`
	Brand              string      `json:"brand"`
	Thumbnail          string      `json:"thumbnail"`
	Images             []string    `json:"images"`
	IsPublished        bool        `json:"is_published"`
	CreatedAt          time.Time   `json:"created_at"`
	CategoryID         int         `json:"category_id"`
	Category           CategoryRef `json:"category"`
}

type ProductCreateInput struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
	Rating             *float64 `json:"rating,omitempty"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images,omitempty"`
	IsPublished        *bool    `json:"is_published,omitempty"`
	CategoryID         int      `json:"category_id"`
}

type ProductUpdateInput struct {
	Title              *string  `json:"title,omitempty"`
	Description        *string  `json:"description,omitempty"`
	Price              *float64 `json:"price,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
	Rating             *float64 `json:"rating,omitempty"`
	Stock              *int     `json:"stock,omitempty"`
	Brand              *string  `json:"brand,omitempty"`
	Thumbnail          *string  `json:"thumbnail,omitempty"`
	Images             []string `json:"images,omitempty"`
	IsPublished        *bool    `json:"is_published,omitempty"`
	CategoryID         *int     `json:"category_id,omitempty"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CategoryInput struct {
	Name string `json:"name"`
}

type CartItem struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	Product   Product `json:"product"`
}

type Cart struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	TotalAmount float64    `json:"total_amount"`
	CartItems   []CartItem `json:"cart_items"`
}

type CartItemInput struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// CartInput is the body of both POST /carts/ and PUT /carts/{id}.
type CartInput struct {
	CartItems []CartItemInput `json:"cart_items"`
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	Carts     []Cart    `json:"carts,omitempty"`
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type UserCreateInput struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserUpdateInput struct {
	FullName *string `json:"full_name,omitempty"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Account is the "self" view of User returned by /me/.
type Account = User

type AccountUpdateInput struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

type SignUpInput = UserCreateInput

type SignInInput struct {
	Username string
	Password string
}
