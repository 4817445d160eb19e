package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Load builds the catalogs, starting from the built-in defaults and
// applying YAML overrides found in dir. An empty dir or a missing file
// keeps the defaults; a malformed file is an error.
func Load(dir string, now time.Time) (*Catalog, error) {
	cat := Default(now)
	if dir == "" {
		return cat, nil
	}

	if err := loadFile(filepath.Join(dir, "products.yaml"), &cat.Products); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dir, "quiz.yaml"), &cat.Questions); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dir, "rewards.yaml"), &cat.Rewards); err != nil {
		return nil, err
	}
	if err := loadFile(filepath.Join(dir, "badges.yaml"), &cat.Badges); err != nil {
		return nil, err
	}

	var sales []flashSaleSpec
	if err := loadFile(filepath.Join(dir, "flash_sales.yaml"), &sales); err != nil {
		return nil, err
	}
	if sales != nil {
		cat.FlashSales = make([]FlashSale, 0, len(sales))
		for _, s := range sales {
			fs, err := s.toFlashSale(now)
			if err != nil {
				return nil, err
			}
			cat.FlashSales = append(cat.FlashSales, fs)
		}
	}

	if err := validate(cat); err != nil {
		return nil, err
	}

	return cat, nil
}

// flashSaleSpec is the YAML shape of a flash-sale item; end times are
// expressed as durations from boot.
type flashSaleSpec struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	OriginalPrice   float64 `yaml:"original_price"`
	SalePrice       float64 `yaml:"sale_price"`
	DiscountPercent int     `yaml:"discount_percent"`
	EndsIn          string  `yaml:"ends_in"`
	Total           int     `yaml:"total"`
	Claimed         int     `yaml:"claimed"`
}

func (s flashSaleSpec) toFlashSale(now time.Time) (FlashSale, error) {
	d, err := time.ParseDuration(s.EndsIn)
	if err != nil {
		return FlashSale{}, fmt.Errorf("flash sale %s: invalid ends_in %q: %w", s.ID, s.EndsIn, err)
	}
	return FlashSale{
		ID:              s.ID,
		Name:            s.Name,
		OriginalPrice:   s.OriginalPrice,
		SalePrice:       s.SalePrice,
		DiscountPercent: s.DiscountPercent,
		EndTime:         now.Add(d),
		Total:           s.Total,
		Claimed:         s.Claimed,
	}, nil
}

func loadFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func validate(cat *Catalog) error {
	for _, q := range cat.Questions {
		if len(q.Options) < 2 {
			return fmt.Errorf("quiz question %s: needs at least two options", q.ID)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("quiz question %s: correct_answer out of range", q.ID)
		}
	}
	if len(cat.Rewards) == 0 {
		return errors.New("spin reward catalog is empty")
	}
	for _, r := range cat.Rewards {
		if r.Probability < 0 || r.Probability > 100 {
			return fmt.Errorf("spin reward %s: probability must be within 0-100", r.ID)
		}
	}
	for _, fs := range cat.FlashSales {
		if fs.Total <= 0 {
			return fmt.Errorf("flash sale %s: total must be positive", fs.ID)
		}
		if fs.Claimed < 0 || fs.Claimed > fs.Total {
			return fmt.Errorf("flash sale %s: claimed out of range", fs.ID)
		}
		if fs.SalePrice >= fs.OriginalPrice {
			return fmt.Errorf("flash sale %s: sale price must undercut original price", fs.ID)
		}
	}
	return nil
}
