package token

// ParseJWTFunc 測試時可替換
var ParseJWTFunc = ParseJWT

// ParseJWTWrapper 讓 authenticator test mock使用這個包裝函數
func ParseJWTWrapper(t string) (*Claims, error) {
	return ParseJWTFunc(t)
}
