package pkgconfig

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Viper is a Config backed by a YAML file. Any key may be overridden from the
// environment: treasury.fx.rates is read from TREASURY_FX_RATES.
type Viper struct {
	v *viper.Viper
}

var _ Config = (*Viper)(nil)

func NewViper(pathFile string) (*Viper, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	base := filepath.Base(pathFile)
	v.AddConfigPath(filepath.Dir(pathFile))
	v.SetConfigName(strings.TrimSuffix(base, filepath.Ext(base)))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.WatchConfig()

	return &Viper{v: v}, nil
}

func (vc *Viper) GetInt(key string) int64 {
	return vc.v.GetInt64(key)
}

func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetDuration accepts Go duration strings such as "50ms" or "10s".
func (vc *Viper) GetDuration(key string) time.Duration {
	return vc.v.GetDuration(key)
}

// GetMap parses "k:v,k:v". Keys and values are trimmed and a pair without a
// colon is skipped, so an empty value yields an empty map.
func (vc *Viper) GetMap(key string) map[string]string {
	m := make(map[string]string)
	for _, pair := range strings.Split(vc.v.GetString(key), ",") {
		if k, v, ok := strings.Cut(pair, ":"); ok {
			m[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return m
}

// Close is a no-op; viper holds no resources.
func (vc *Viper) Close() error {
	return nil
}
