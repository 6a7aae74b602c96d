package config

import "testing"

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for _, k := range []string{"FRONTEND", "STORE", "CATALOG", "TOKEN", "DB_PORT", "CASHIER_ID", "AUTO_MIGRATE", "RECEIPT_PATH", "DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
		t.Setenv(k, "")
	}
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, nil)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Frontend != FrontendTerminal || cfg.Store.Backend != StoreFile || cfg.Catalog != CatalogBuiltin {
		t.Errorf("defaults = %q/%q/%q", cfg.Frontend, cfg.Store.Backend, cfg.Catalog)
	}
	if cfg.Store.ReceiptPath != "data/receipt.json" {
		t.Errorf("ReceiptPath = %q", cfg.Store.ReceiptPath)
	}
	if cfg.DB.Port != 5432 {
		t.Errorf("DB.Port = %d", cfg.DB.Port)
	}
	if cfg.NeedsDB() {
		t.Error("default config should not need a database")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"unknown frontend", map[string]string{"FRONTEND": "gui"}, true},
		{"telegram without token", map[string]string{"FRONTEND": "telegram"}, true},
		{"telegram with token", map[string]string{"FRONTEND": "telegram", "TOKEN": "x"}, false},
		{"unknown store", map[string]string{"STORE": "s3"}, true},
		{"history store", map[string]string{"STORE": "History"}, false},
		{"unknown catalog", map[string]string{"CATALOG": "csv"}, true},
		{"bad port", map[string]string{"DB_PORT": "abc"}, true},
		{"bad cashier", map[string]string{"CASHIER_ID": "me"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNeedsDB(t *testing.T) {
	setEnv(t, map[string]string{"STORE": "postgres", "AUTO_MIGRATE": "true"})
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.NeedsDB() || !cfg.AutoMigrate {
		t.Errorf("NeedsDB = %v, AutoMigrate = %v", cfg.NeedsDB(), cfg.AutoMigrate)
	}
	if got := cfg.DB.URL(); got != "postgres://postgres:@localhost:5432/drinkshop" {
		t.Errorf("URL = %q", got)
	}
}
