package main

// @title uxpilot APIs
// @version 1.0
// @description UX-test orchestration service: upload design images and drive a simulated participant through a scripted interview.

// @host localhost:9089
// @BasePath /
// @schemes http
import (
	protocol "uxpilot/protocal"

	_ "uxpilot/docs"

	_ "github.com/arsmn/fiber-swagger/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Println(err)
	}
}
