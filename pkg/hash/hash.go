// Package hash 提供了密码的单向哈希与校验功能。
package hash

import "golang.org/x/crypto/bcrypt"

// DefaultCost 是 bcrypt 的默认代价因子。
// 该值可通过配置调整，但同一部署内必须保持一致，否则旧哈希无法校验。
const DefaultCost = 10

// HashPassword 使用 bcrypt 对明文密码进行加盐哈希。
// cost 小于 bcrypt 允许的最小值时回退到 DefaultCost。
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash 校验明文密码与存储的哈希是否匹配。
// bcrypt 的比较本身是常数时间的，不会泄露前缀信息。
func CheckPasswordHash(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
