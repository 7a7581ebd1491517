package main

import (
	"flag"
	"fmt"

	"school-ledger/app/config"
	"school-ledger/app/database"
	"school-ledger/app/models"
)

func main() {
	email := flag.String("email", "", "email address for the new user")
	firstName := flag.String("first", "Root", "first name")
	lastName := flag.String("last", "Admin", "last name")
	password := flag.String("password", "", "initial password")
	role := flag.String("role", models.RoleRootAdmin, "role to assign")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_user -email <email> -password <password> [-role root_admin]")
		return
	}

	config.Init()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		fmt.Printf("Error running migrations: %v\n", err)
		return
	}

	user := &models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
	}

	if err := database.CreateUser(db, user, *role); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s %s (%s) with role %s\n", user.FirstName, user.LastName, user.Email, *role)
}
