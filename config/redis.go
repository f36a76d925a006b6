package config

// RedisConfig Redis 连接配置，缓存审核看板计数快照使用
type RedisConfig struct {
	Address  string `mapstructure:"address" json:"address" yaml:"address"`
	Password string `mapstructure:"password" json:"password" yaml:"password"`
	DB       int    `mapstructure:"db" json:"db" yaml:"db"`
}
