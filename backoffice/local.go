package backoffice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/royalkeys/royalkeys/catalog"
	"github.com/royalkeys/royalkeys/internal/util"
	"github.com/royalkeys/royalkeys/storage"
)

const productKeyPrefix = "product:"

// LocalService implements Service without a hosted project: admin
// credentials are argon2id hashes checked in-process, and products live in
// a storage.Repository. Used when Supabase is not configured so the admin
// panel still works offline.
type LocalService struct {
	// admins maps allowlisted email to encoded argon2id password hash.
	admins map[string]string
	repo   storage.Repository
}

var _ Service = (*LocalService)(nil)

// NewLocalService creates a local back-office over repo. The products
// table is seeded from seed on first use if empty.
func NewLocalService(repo storage.Repository, admins map[string]string, seed *catalog.Catalog) (*LocalService, error) {
	s := &LocalService{admins: admins, repo: repo}
	if seed != nil {
		keys, err := repo.List()
		if err != nil {
			return nil, fmt.Errorf("listing product records: %w", err)
		}
		seeded := false
		for _, k := range keys {
			if strings.HasPrefix(k, productKeyPrefix) {
				seeded = true
				break
			}
		}
		if !seeded {
			for _, p := range seed.Products() {
				if err := s.UpsertProduct(context.Background(), p); err != nil {
					return nil, err
				}
			}
		}
	}
	return s, nil
}

// HashAdminPassword encodes a password for the admins map.
func HashAdminPassword(password string) (string, error) {
	return util.HashPassword(password)
}

func (s *LocalService) SignIn(ctx context.Context, email, password string) error {
	encoded, ok := s.admins[email]
	if !ok {
		return ErrNotAllowed
	}
	match, err := util.VerifyPassword(password, encoded)
	if err != nil {
		return fmt.Errorf("verifying credentials: %w", err)
	}
	if !match {
		return ErrInvalidCredentials
	}
	return nil
}

// ResetPassword has no email pipeline locally; the operator must rotate
// the hash out of band.
func (s *LocalService) ResetPassword(ctx context.Context, email string) error {
	return ErrNotConfigured
}

func (s *LocalService) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	keys, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	var products []catalog.Product
	for _, k := range keys {
		if !strings.HasPrefix(k, productKeyPrefix) {
			continue
		}
		data, err := s.repo.Load(k)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		var p catalog.Product
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decoding product %s: %w", k, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *LocalService) UpsertProduct(ctx context.Context, p catalog.Product) error {
	if p.ID == "" {
		return fmt.Errorf("product ID must not be empty")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.repo.Save(productKeyPrefix+p.ID, data)
}

func (s *LocalService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(productKeyPrefix + id)
}
