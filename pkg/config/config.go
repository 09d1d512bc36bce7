package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Game   GameConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

// GameConfig 是遊戲規則相關的設置
type GameConfig struct {
	NightSeconds   int // 夜晚階段秒數
	MorningSeconds int // 早晨公告階段秒數
	DaySeconds     int // 白天討論階段秒數
	VotingSeconds  int // 投票階段秒數
	SeerUses       int // 預言家占卜次數
	BanditMarks    int // 強盜初始標記次數
	BanditWinKills int // 強盜個人勝利所需的擊殺數
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")

	// 遊戲規則的預設值，配置文件可以覆蓋
	viper.SetDefault("game.nightseconds", 30)
	viper.SetDefault("game.morningseconds", 10)
	viper.SetDefault("game.dayseconds", 75)
	viper.SetDefault("game.votingseconds", 15)
	viper.SetDefault("game.seeruses", 2)
	viper.SetDefault("game.banditmarks", 2)
	viper.SetDefault("game.banditwinkills", 3)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// PhaseDuration 回傳指定階段的持續時間
func (g GameConfig) PhaseDuration(phase string) time.Duration {
	switch phase {
	case "night":
		return time.Duration(g.NightSeconds) * time.Second
	case "morning":
		return time.Duration(g.MorningSeconds) * time.Second
	case "day":
		return time.Duration(g.DaySeconds) * time.Second
	case "voting":
		return time.Duration(g.VotingSeconds) * time.Second
	default:
		return 0
	}
}
