package repository

import (
	"context"

	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/upstream"

	"github.com/tidwall/gjson"
)

var contractPaths = []string{
	"/api/k_hopdong/lay-hopdong-cua-khach-hang",
	"/api/k_hopdong/lay-hopdong",
}

// ContractRepository reads the contracts of the logged in tenant
type ContractRepository interface {
	List(ctx context.Context, token string) ([]models.Contract, error)
}

// contractRepository implements ContractRepository
type contractRepository struct {
	client *upstream.Client
}

// NewContractRepository creates a new instance of ContractRepository
func NewContractRepository(client *upstream.Client) ContractRepository {
	return &contractRepository{
		client: client,
	}
}

// List tries the current endpoint and falls back to the legacy one on 404
func (r *contractRepository) List(ctx context.Context, token string) ([]models.Contract, error) {
	resp, err := r.client.GetFirst(ctx, token, contractPaths...)
	if err != nil {
		return nil, err
	}

	items := upstream.ListOf(resp.JSON(), "hopdong", "hopDong", "contracts", "data.hopdong")
	contracts := make([]models.Contract, 0, len(items))
	for _, item := range items {
		contracts = append(contracts, decodeContract(item))
	}
	return contracts, nil
}

func decodeContract(v gjson.Result) models.Contract {
	return models.Contract{
		ID:           upstream.StringOf(v, "HopDongID", "hopDongId", "id"),
		CustomerID:   upstream.StringOf(v, "KhachHangID_id", "KhachHangID"),
		RoomID:       upstream.StringOf(v, "PhongID_id", "PhongID"),
		Building:     upstream.StringOf(v, "DayPhong"),
		StartDate:    upstream.StringOf(v, "NgayBatDau"),
		EndDate:      upstream.StringOf(v, "NgayKetThuc"),
		SignedAt:     upstream.StringOf(v, "NgayTaoHopDong", "NgayKy", "createdAt"),
		Cycle:        upstream.StringOf(v, "ChuKy", "ThoiHanHopDong", "ChuKyThu"),
		Term:         upstream.StringOf(v, "ThoiHanHopDong", "ThoiHan"),
		Deposit:      upstream.AmountOf(v, "TienDatCoc", "TienCoc", "DatCoc"),
		Note:         upstream.StringOf(v, "GhiChuHopDong", "GhiChu"),
		MemberCount:  upstream.AmountOf(v, "SoLuongThanhVien").Or(0),
		Status:       upstream.StringOf(v, "TrangThaiHopDong", "TrangThai"),
		ManagerID:    upstream.StringOf(v, "QuanLiID_id", "QuanLiID"),
		ManagerName:  upstream.StringOf(v, "HoTenQuanLi"),
		ManagerPhone: upstream.StringOf(v, "SoDienThoaiDN"),
		ManagerIDNo:  upstream.StringOf(v, "SoCCCD"),
		ManagerAddr:  upstream.StringOf(v, "DiaChiChiTiet"),
	}
}
