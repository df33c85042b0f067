// Package config は環境変数から設定値を読み込むヘルパーを提供する。
// 未設定または不正な値の場合はフォールバック値を返す。
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetString は環境変数を取得し、設定されていない場合はフォールバック値を返す。
// 空文字列も未設定として扱う。
func GetString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt は環境変数を整数として取得する。
func GetInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("環境変数 %s の値が不正です: %v", key, err)
		return fallback
	}
	return parsed
}

// GetBool は環境変数を真偽値として取得する。
func GetBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("環境変数 %s の値が不正です: %v", key, err)
		return fallback
	}
	return parsed
}

// GetDuration は環境変数を time.ParseDuration 形式（例: "24h"）で取得する。
func GetDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("環境変数 %s の値が不正です: %v", key, err)
		return fallback
	}
	return parsed
}

// GetList はカンマ区切りの環境変数をスライスとして取得する。
// 各要素の前後の空白は除去し、空要素は捨てる。
func GetList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
