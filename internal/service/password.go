package service

import "golang.org/x/crypto/bcrypt"

// passwordCost bcrypt 计算成本，测试中可调低
var passwordCost = bcrypt.DefaultCost

// HashPassword 使用 bcrypt 加盐哈希密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 校验明文与哈希是否匹配
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
