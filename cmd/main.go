package main

import (
	"github.com/Anuraj-27/nutriscan27/config"
	"github.com/Anuraj-27/nutriscan27/routes"
	"github.com/Anuraj-27/nutriscan27/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter()
	r.Run(":8080")
}
