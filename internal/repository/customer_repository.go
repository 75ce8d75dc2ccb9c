package repository

import (
	"context"
	"encoding/json"

	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/upstream"

	"github.com/tidwall/gjson"
)

const (
	profilePath        = "/api/k_khachhang/thong-tin"
	loginPath          = "/api/k_khachhang/dang-nhap"
	forgotPasswordPath = "/api/k_khachhang/quen-mat-khau"
)

// LoginOutcome is the upstream verdict on a login attempt
type LoginOutcome struct {
	OK         bool
	Token      string
	CustomerID string
	User       json.RawMessage
	Message    string
}

// CustomerRepository reads the tenant profile and handles credentials
type CustomerRepository interface {
	Current(ctx context.Context, token string) (*models.Customer, error)
	Login(ctx context.Context, username, password string, policy upstream.RetryPolicy) (*LoginOutcome, error)
	ForgotPassword(ctx context.Context, customerID, roomID, content string) error
}

// customerRepository implements CustomerRepository
type customerRepository struct {
	client *upstream.Client
}

// NewCustomerRepository creates a new instance of CustomerRepository
func NewCustomerRepository(client *upstream.Client) CustomerRepository {
	return &customerRepository{
		client: client,
	}
}

// Current reads the profile of the token's owner
func (r *customerRepository) Current(ctx context.Context, token string) (*models.Customer, error) {
	resp, err := r.client.Get(ctx, token, profilePath)
	if err != nil {
		return nil, err
	}
	customer := decodeCustomer(upstream.ObjectOf(resp.JSON(), "khachHang", "data"))
	return &customer, nil
}

// Login posts the credentials with retry. A rejected login is an outcome,
// not an error; errors mean the upstream could not be reached.
func (r *customerRepository) Login(ctx context.Context, username, password string, policy upstream.RetryPolicy) (*LoginOutcome, error) {
	resp, err := r.client.PostWithRetry(ctx, "", loginPath, map[string]string{
		"TenDangNhap": username,
		"MatKhau":     password,
	}, policy)
	if err != nil {
		return nil, err
	}

	body := resp.JSON()
	user := upstream.FirstOf(body, "user", "khachHang")
	outcome := &LoginOutcome{
		Token:      upstream.StringOf(body, "token", "accessToken"),
		CustomerID: upstream.StringOf(user, "KhachHangID", "id"),
		User:       rawJSON(user),
	}
	outcome.OK = resp.OK() && outcome.Token != ""
	if !outcome.OK {
		outcome.Message = upstream.StringOf(body, "message", "error")
	}
	return outcome, nil
}

// ForgotPassword files a password reset request for the landlord to handle
func (r *customerRepository) ForgotPassword(ctx context.Context, customerID, roomID, content string) error {
	payload := map[string]any{
		"KhachHangID": numericID(customerID),
		"NoiDung":     content,
	}
	if id := numericID(roomID); id != nil {
		payload["PhongID"] = id
	}
	_, err := r.client.Post(ctx, "", forgotPasswordPath, payload)
	return err
}

func decodeCustomer(v gjson.Result) models.Customer {
	c := models.Customer{
		ID:           upstream.StringOf(v, "KhachHangID", "id"),
		FullName:     upstream.StringOf(v, "HoTenKhachHang", "HoTen"),
		Phone:        upstream.StringOf(v, "SoDienThoai"),
		Birthday:     upstream.StringOf(v, "NgaySinh"),
		Gender:       upstream.StringOf(v, "GioiTinh"),
		Occupation:   upstream.StringOf(v, "CongViec"),
		Province:     upstream.StringOf(v, "TinhThanh"),
		District:     upstream.StringOf(v, "QuanHuyen"),
		Ward:         upstream.StringOf(v, "PhuongXa"),
		Street:       upstream.StringOf(v, "DiaChiCuThe"),
		IDNumber:     upstream.StringOf(v, "SoCCCD"),
		IDIssuedDate: upstream.StringOf(v, "NgayCapCCCD"),
		IDIssuedBy:   upstream.StringOf(v, "NoiCapCCCD"),
		IDCardFront:  upstream.StringOf(v, "CCCDMT"),
		IDCardBack:   upstream.StringOf(v, "CCCDMS"),
		Rentals:      []models.Rental{},
	}

	for _, hd := range upstream.ListOf(upstream.FirstOf(v, "HopDongsDangThue")) {
		room := hd.Get("Phong")
		c.Rentals = append(c.Rentals, models.Rental{
			ContractID: upstream.StringOf(hd, "HopDongID"),
			StartDate:  upstream.StringOf(hd, "NgayBatDau"),
			EndDate:    upstream.StringOf(hd, "NgayKetThuc"),
			Status:     upstream.StringOf(hd, "TrangThaiHopDong"),
			Room: models.Room{
				ID:          upstream.StringOf(room, "PhongID"),
				Number:      upstream.StringOf(room, "SoPhong"),
				Building:    upstream.StringOf(room, "DayPhong"),
				Price:       upstream.AmountOf(room, "GiaPhong"),
				Status:      upstream.StringOf(room, "TrangThaiPhong"),
				Description: upstream.StringOf(room, "MoTaPhong"),
				Area:        normalizeArea(room.Get("DienTich")),
				Amenities:   parseAmenities(room.Get("TienIch")),
			},
		})
		if rid := c.Rentals[len(c.Rentals)-1].Room.ID; rid == "" {
			c.Rentals[len(c.Rentals)-1].Room.ID = upstream.StringOf(hd, "PhongID")
		}
	}
	return c
}
