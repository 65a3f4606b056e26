package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			if _, err := db.Exec("DELETE FROM employees"); err != nil {
				log.Fatalf("failed to clear employees: %v", err)
			}
			if _, err := db.Exec("DELETE FROM departments"); err != nil {
				log.Fatalf("failed to clear departments: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		departments := []string{"Engineering", "Human Resources", "Sales", "Finance"}
		departmentIDs := make(map[string]int64)

		for _, name := range departments {
			var id int64
			err := db.QueryRow("SELECT id FROM departments WHERE department_name = $1", name).Scan(&id)
			if err == nil {
				fmt.Printf("department %q already exists\n", name)
				departmentIDs[name] = id
				continue
			}

			err = db.QueryRow(
				"INSERT INTO departments (department_name, created_at, updated_at) VALUES ($1, now(), now()) RETURNING id",
				name,
			).Scan(&id)
			if err != nil {
				log.Fatalf("failed to insert department %q: %v", name, err)
			}
			departmentIDs[name] = id
			fmt.Printf("Seeded department: %s\n", name)
		}

		employees := []struct {
			Name       string
			Gender     string
			Email      string
			Phone      string
			Salary     float64
			Department string
		}{
			{"Dang Khoa", "male", "khoa@example.com", "0901000001", 1500.00, "Engineering"},
			{"Thu Ha", "female", "ha@example.com", "0901000002", 1750.50, "Engineering"},
			{"Minh Anh", "female", "anh@example.com", "0901000003", 1200.00, "Human Resources"},
			{"Quang Huy", "male", "huy@example.com", "0901000004", 1400.25, "Sales"},
		}

		for _, e := range employees {
			var exists int
			err := db.QueryRow("SELECT 1 FROM employees WHERE email = $1", e.Email).Scan(&exists)
			if err == nil {
				fmt.Printf("employee %q already exists\n", e.Name)
				continue
			}

			_, err = db.Exec(
				`INSERT INTO employees (employee_name, gender, email, phone, salary, department_id, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, now(), now())`,
				e.Name, e.Gender, e.Email, e.Phone, e.Salary, departmentIDs[e.Department],
			)
			if err != nil {
				log.Fatalf("failed to insert employee %q: %v", e.Name, err)
			}
			fmt.Printf("Seeded employee: %s\n", e.Name)
		}

		fmt.Println("Seeding complete")
	},
}
