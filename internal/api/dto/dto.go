// Package dto holds the response projections. Stored records are copied,
// never trimmed in place.
package dto

import (
	"time"

	"chitrakalakar-app/internal/domain/billing"
	"chitrakalakar-app/internal/domain/exhibitions"
	"chitrakalakar-app/internal/domain/orders"
	"chitrakalakar-app/internal/domain/users"
	"chitrakalakar-app/internal/domain/works"
)

type AccountDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	Location      *string   `json:"location,omitempty"`
	Bio           *string   `json:"bio,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Avatar        *string   `json:"avatar,omitempty"`
	IsApproved    bool      `json:"is_approved"`
	IsActive      bool      `json:"is_active"`
	IsFeatured    bool      `json:"is_featured"`
	IsMember      bool      `json:"is_member"`
	AnnualFeePaid bool      `json:"annual_fee_paid"`
	JoinedAt      time.Time `json:"joined_at"`
}

func Account(a users.Account) AccountDTO {
	return AccountDTO{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Role:          string(a.Role),
		Location:      a.Location,
		Bio:           a.Bio,
		Category:      a.Category,
		Avatar:        a.Avatar,
		IsApproved:    a.IsApproved,
		IsActive:      a.IsActive,
		IsFeatured:    a.IsFeatured,
		IsMember:      a.IsMember,
		AnnualFeePaid: a.AnnualFeePaid,
		JoinedAt:      a.JoinedAt,
	}
}

// PublicArtistDTO is what anonymous visitors may see of an artist.
type PublicArtistDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Category *string `json:"category,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`

	ArtworkCount      int64 `json:"artwork_count"`
	CompletedProjects int64 `json:"completed_projects"`
}

func PublicArtist(a users.Account) PublicArtistDTO {
	return PublicArtistDTO{ID: a.ID, Name: a.Name, Location: a.Location, Bio: a.Bio, Category: a.Category, Avatar: a.Avatar}
}

type ArtworkDTO struct {
	ID              string    `json:"id"`
	ArtistID        string    `json:"artist_id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	Price           int64     `json:"price"`
	Image           string    `json:"image"`
	Description     *string   `json:"description,omitempty"`
	IsApproved      bool      `json:"is_approved"`
	IsForExhibition bool      `json:"is_for_exhibition"`
	IsSold          bool      `json:"is_sold"`
	Views           int64     `json:"views"`
	CreatedAt       time.Time `json:"created_at"`
}

func Artwork(a works.Artwork) ArtworkDTO {
	return ArtworkDTO{
		ID:              a.ID,
		ArtistID:        a.ArtistID,
		Title:           a.Title,
		Category:        a.Category,
		Price:           a.Price,
		Image:           a.Image,
		Description:     a.Description,
		IsApproved:      a.IsApproved,
		IsForExhibition: a.IsForExhibition,
		IsSold:          a.IsSold,
		Views:           a.Views,
		CreatedAt:       a.CreatedAt,
	}
}

func Artworks(in []works.Artwork) []ArtworkDTO {
	out := make([]ArtworkDTO, 0, len(in))
	for _, a := range in {
		out = append(out, Artwork(a))
	}
	return out
}

type ExhibitionDTO struct {
	ID               string       `json:"id"`
	ArtistID         string       `json:"artist_id"`
	Name             string       `json:"name"`
	Description      *string      `json:"description,omitempty"`
	StartDate        time.Time    `json:"start_date"`
	EndDate          time.Time    `json:"end_date"`
	ArtworkIDs       []string     `json:"artwork_ids"`
	ArtworkCount     int          `json:"artwork_count"`
	ArtistName       string       `json:"artist_name,omitempty"`
	Artworks         []ArtworkDTO `json:"artworks,omitempty"`
	Status           string       `json:"status"`
	IsApproved       bool         `json:"is_approved"`
	IsPaid           bool         `json:"is_paid"`
	DaysPaid         int          `json:"days_paid"`
	Fees             int64        `json:"fees"`
	Views            int64        `json:"views"`
	ArchivedAt       *time.Time   `json:"archived_at,omitempty"`
	ArchiveExpiresAt *time.Time   `json:"archive_expires_at,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

func Exhibition(e exhibitions.Exhibition) ExhibitionDTO {
	ids := make([]string, len(e.ArtworkIDs))
	copy(ids, e.ArtworkIDs)
	return ExhibitionDTO{
		ID:               e.ID,
		ArtistID:         e.ArtistID,
		Name:             e.Name,
		Description:      e.Description,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		ArtworkIDs:       ids,
		ArtworkCount:     len(ids),
		Status:           string(e.Status),
		IsApproved:       e.IsApproved,
		IsPaid:           e.IsPaid,
		DaysPaid:         e.DaysPaid,
		Fees:             e.Fees,
		Views:            e.Views,
		ArchivedAt:       e.ArchivedAt,
		ArchiveExpiresAt: e.ArchiveExpiresAt,
		CreatedAt:        e.CreatedAt,
	}
}

func Exhibitions(in []exhibitions.Exhibition) []ExhibitionDTO {
	out := make([]ExhibitionDTO, 0, len(in))
	for _, e := range in {
		out = append(out, Exhibition(e))
	}
	return out
}

type OrderDTO struct {
	ID             string     `json:"id"`
	OrderNumber    string     `json:"order_number"`
	ArtistID       string     `json:"artist_id"`
	ArtworkID      *string    `json:"artwork_id,omitempty"`
	ArtworkTitle   string     `json:"artwork_title"`
	CustomerID     string     `json:"customer_id"`
	CustomerName   string     `json:"customer_name"`
	CustomerEmail  string     `json:"customer_email"`
	Amount         int64      `json:"amount"`
	CommissionFee  int64      `json:"commission_fee"`
	ArtistReceives int64      `json:"artist_receives"`
	Status         string     `json:"status"`
	IsPaid         bool       `json:"is_paid"`
	Notes          *string    `json:"notes,omitempty"`
	StartDate      time.Time  `json:"start_date"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func Order(o orders.Order) OrderDTO {
	return OrderDTO{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		ArtistID:       o.ArtistID,
		ArtworkID:      o.ArtworkID,
		ArtworkTitle:   o.ArtworkTitle,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		CustomerEmail:  o.CustomerEmail,
		Amount:         o.Amount,
		CommissionFee:  o.CommissionFee,
		ArtistReceives: o.ArtistReceives,
		Status:         string(o.Status),
		IsPaid:         o.IsPaid,
		Notes:          o.Notes,
		StartDate:      o.StartDate,
		DueDate:        o.DueDate,
		CreatedAt:      o.CreatedAt,
	}
}

func Orders(in []orders.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(in))
	for _, o := range in {
		out = append(out, Order(o))
	}
	return out
}

type PaymentDTO struct {
	SessionID     string     `json:"session_id"`
	OrderType     string     `json:"order_type"`
	PaymentStatus string     `json:"payment_status"`
	UserID        string     `json:"user_id"`
	EntityID      *string    `json:"entity_id,omitempty"`
	Amount        int64      `json:"amount"`
	Currency      string     `json:"currency"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func Payment(p billing.PaymentTransaction) PaymentDTO {
	return PaymentDTO{
		SessionID:     p.SessionID,
		OrderType:     string(p.OrderType),
		PaymentStatus: string(p.PaymentStatus),
		UserID:        p.UserID,
		EntityID:      p.EntityID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
	}
}

func Payments(in []billing.PaymentTransaction) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(in))
	for _, p := range in {
		out = append(out, Payment(p))
	}
	return out
}
