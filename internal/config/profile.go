package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// PROFILE CONFIGURATION STRUCTURE
// =============================================================================

// ProfileConfig describes one order-export layout. Each shop system or
// export preset gets its own profile file.
type ProfileConfig struct {
	// ProfileName is used in logs and reports.
	ProfileName string `yaml:"profile_name"`

	// ProfileCode is a short code used in output file names.
	ProfileCode string `yaml:"profile_code"`

	// FileMatchingPatterns are glob patterns matched against the input file
	// name. The first profile with a matching pattern is used.
	// Example: "GoQ_*.csv"
	FileMatchingPatterns []string `yaml:"file_matching_patterns"`

	// CSVSettings contains settings for reading the export.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// Columns names the export header for every order field.
	Columns OrderColumns `yaml:"columns"`

	// NormalizationRules are applied to order fields after mapping.
	NormalizationRules []NormalizationRule `yaml:"normalization_rules"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter separates fields. "," "|" "tab" ";" Default: ","
	Delimiter string `yaml:"delimiter"`

	// HeaderRows is the number of header rows. Multi-line headers are
	// joined with a space. Default: 1
	HeaderRows int `yaml:"header_rows"`

	// DataStartRow is the 1-based row where data begins. Default: HeaderRows+1
	DataStartRow int `yaml:"data_start_row"`

	// Encoding is "Shift_JIS", "EUC-JP" or "UTF-8". Default: "Shift_JIS"
	Encoding string `yaml:"encoding"`
}

// OrderColumns maps every order field to its export header.
type OrderColumns struct {
	OrderID             string `yaml:"order_id"`
	GroupID             string `yaml:"group_id"`
	OrderedAt           string `yaml:"ordered_at"`
	ShippingMethod      string `yaml:"shipping_method"`
	CheckNote           string `yaml:"check_note"`
	Store               string `yaml:"store"`
	TrackingNumber      string `yaml:"tracking_number"`
	PostalCode          string `yaml:"postal_code"`
	Address             string `yaml:"address"`
	RecipientName       string `yaml:"recipient_name"`
	BuyerName           string `yaml:"buyer_name"`
	TotalAmount         string `yaml:"total_amount"`
	ProductURL          string `yaml:"product_url"`
	ProductName         string `yaml:"product_name"`
	OrderQuantity       string `yaml:"order_quantity"`
	JANCode             string `yaml:"jan_code"`
	ProductCode         string `yaml:"product_code"`
	SKUManagementNumber string `yaml:"sku_management_number"`
	ProductSKU          string `yaml:"product_sku"`
}

// DefaultOrderColumns returns the headers of the GoQ order export.
func DefaultOrderColumns() OrderColumns {
	return OrderColumns{
		OrderID:             "受注番号",
		GroupID:             "GoQ管理番号",
		OrderedAt:           "注文日時",
		ShippingMethod:      "配送方法(複数配送先)",
		CheckNote:           "チェック項目",
		Store:               "販売店舗",
		TrackingNumber:      "お荷物伝票番号",
		PostalCode:          "送付先郵便番号",
		Address:             "送付先住所（全て）",
		RecipientName:       "送付先氏名",
		BuyerName:           "注文者氏名",
		TotalAmount:         "合計金額",
		ProductURL:          "商品URL",
		ProductName:         "商品名",
		OrderQuantity:       "個数",
		JANCode:             "JANコード",
		ProductCode:         "商品コード",
		SKUManagementNumber: "SKU管理番号",
		ProductSKU:          "商品SKU",
	}
}

// NormalizationRule lists actions applied in order to one order field.
type NormalizationRule struct {
	// Field is the yaml key of the order field, e.g. "product_sku".
	Field string `yaml:"field"`

	Actions []NormalizationAction `yaml:"actions"`
}

// NormalizationAction is one step of a rule.
//
// Supported types:
//   - "trim"      : remove leading and trailing whitespace
//   - "uppercase" : convert to uppercase
//   - "lowercase" : convert to lowercase
//   - "narrow"    : full-width ASCII to ASCII, half-width katakana to full-width
//   - "replace"   : replace Find with Value
//   - "lookup"    : replace the whole value using LookupTable
//   - "default"   : use Value when the field is blank
type NormalizationAction struct {
	Type        string            `yaml:"type"`
	Value       string            `yaml:"value"`
	Find        string            `yaml:"find,omitempty"`
	LookupTable map[string]string `yaml:"lookup_table,omitempty"`
}

// =============================================================================
// PROFILE LOADING FUNCTIONS
// =============================================================================

// DefaultProfile is used when no profile file exists: the GoQ export read
// from any CSV file.
func DefaultProfile() *ProfileConfig {
	p := &ProfileConfig{
		ProfileName:          "GoQ order export",
		ProfileCode:          "goq",
		FileMatchingPatterns: []string{"*.csv", "*.CSV"},
	}
	applyProfileDefaults(p)
	return p
}

// LoadProfiles loads every *.yaml and *.yml file of configsDir, keyed by
// profile code (the file name when the code is empty).
//
// RETURNS:
//   - The profiles.
//   - ErrNoProfiles when the directory holds none.
//   - An error if any file cannot be parsed.
func LoadProfiles(configsDir string) (map[string]*ProfileConfig, error) {
	files, err := filepath.Glob(filepath.Join(configsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list profile files: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(configsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list profile files: %w", err)
	}
	files = append(files, ymlFiles...)

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoProfiles, configsDir)
	}

	profiles := make(map[string]*ProfileConfig, len(files))
	for _, file := range files {
		p, err := LoadProfile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}

		key := p.ProfileCode
		if key == "" {
			key = filepath.Base(file)
		}
		profiles[key] = p
	}
	return profiles, nil
}

// LoadProfile loads a single profile file.
func LoadProfile(filePath string) (*ProfileConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var p ProfileConfig
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	applyProfileDefaults(&p)
	return &p, nil
}

// MatchProfile returns the profile whose patterns match the base name of
// filePath. Profiles are tried in code order so the result does not depend
// on map iteration.
func MatchProfile(filePath string, profiles map[string]*ProfileConfig) *ProfileConfig {
	fileName := filepath.Base(filePath)

	keys := make([]string, 0, len(profiles))
	for k := range profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, pattern := range profiles[k].FileMatchingPatterns {
			matched, err := filepath.Match(pattern, fileName)
			if err != nil {
				continue
			}
			if matched {
				return profiles[k]
			}
		}
	}
	return nil
}

func applyProfileDefaults(p *ProfileConfig) {
	if p.CSVSettings.Delimiter == "" {
		p.CSVSettings.Delimiter = ","
	}
	if p.CSVSettings.HeaderRows == 0 {
		p.CSVSettings.HeaderRows = 1
	}
	if p.CSVSettings.DataStartRow == 0 {
		p.CSVSettings.DataStartRow = p.CSVSettings.HeaderRows + 1
	}
	if p.CSVSettings.Encoding == "" {
		p.CSVSettings.Encoding = "Shift_JIS"
	}

	def := DefaultOrderColumns()
	c := &p.Columns
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&c.OrderID, def.OrderID)
	fill(&c.GroupID, def.GroupID)
	fill(&c.OrderedAt, def.OrderedAt)
	fill(&c.ShippingMethod, def.ShippingMethod)
	fill(&c.CheckNote, def.CheckNote)
	fill(&c.Store, def.Store)
	fill(&c.TrackingNumber, def.TrackingNumber)
	fill(&c.PostalCode, def.PostalCode)
	fill(&c.Address, def.Address)
	fill(&c.RecipientName, def.RecipientName)
	fill(&c.BuyerName, def.BuyerName)
	fill(&c.TotalAmount, def.TotalAmount)
	fill(&c.ProductURL, def.ProductURL)
	fill(&c.ProductName, def.ProductName)
	fill(&c.OrderQuantity, def.OrderQuantity)
	fill(&c.JANCode, def.JANCode)
	fill(&c.ProductCode, def.ProductCode)
	fill(&c.SKUManagementNumber, def.SKUManagementNumber)
	fill(&c.ProductSKU, def.ProductSKU)
}
