package repository

import (
	"errors"

	"github.com/doguscu/barcode-scanner/internal/model"
	"github.com/doguscu/barcode-scanner/pkg/database"

	"gorm.io/gorm"
)

type ScanResultRepository interface {
	Create(scan *model.ScanResult) error
	FindAll() ([]model.ScanResult, error)
	FindByBarcode(barcode string) (*model.ScanResult, error)
	Delete(id int64) (bool, error)
	Clear() error
}

type scanResultRepo struct {
	store *database.Store
}

func NewScanResultRepo(store *database.Store) ScanResultRepository {
	return &scanResultRepo{store}
}

func (r *scanResultRepo) Create(scan *model.ScanResult) error {
	return r.store.Write(func(db *gorm.DB) error {
		return db.Create(scan).Error
	})
}

func (r *scanResultRepo) FindAll() ([]model.ScanResult, error) {
	var scans []model.ScanResult
	err := r.store.DB().Order("scan_date DESC").Order("id DESC").Find(&scans).Error
	return scans, err
}

func (r *scanResultRepo) FindByBarcode(barcode string) (*model.ScanResult, error) {
	var scan model.ScanResult
	err := r.store.DB().
		Where("barcode = ?", barcode).
		Order("scan_date DESC").
		Order("id DESC").
		First(&scan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *scanResultRepo) Delete(id int64) (bool, error) {
	var affected int64
	err := r.store.Write(func(db *gorm.DB) error {
		res := db.Delete(&model.ScanResult{}, "id = ?", id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

func (r *scanResultRepo) Clear() error {
	return r.store.Write(func(db *gorm.DB) error {
		return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.ScanResult{}).Error
	})
}
