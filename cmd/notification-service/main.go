package main

import "payment-preconfirm/internal/bootstrap/notification"

func main() { notification.StartNotificationService() }
