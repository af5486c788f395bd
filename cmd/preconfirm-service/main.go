package main

import "payment-preconfirm/internal/bootstrap/preconfirm"

// @title Payment Pre-confirmation API
// @version 1.0
// @description Предварительная проверка платежей на мошенничество перед подтверждением
// @host localhost:8080
// @BasePath /api/v1
func main() { preconfirm.StartPreconfirmService() }
