package directorysynchandler

import (
	"iga-backend/lib/utils/helpers"
	"iga-backend/models"
	dbmodels "iga-backend/models/db"
)

// Report columns differ between BambooHR accounts, each field accepts the first non-empty key.
var (
	emailKeys      = []string{"workEmail", "email", "Email", "Work Email"}
	fullNameKeys   = []string{"displayName", "fullName", "name", "employeeName", "Employee", "firstName"}
	roleKeys       = []string{"jobTitle", "title", "role"}
	departmentKeys = []string{"customTribeName", "department", "Department"}
	managerKeys    = []string{"91", "manager", "managerName", "Manager"}
	statusKeys     = []string{"status", "employmentStatus", "Employment Status"}
	hireDateKeys   = []string{"hireDate", "dateOfHire", "Hire Date"}
	endDateKeys    = []string{"terminationDate", "endDate", "End Date"}
)

// toEmployee maps one report row. ok is false when the row has no e-mail.
func toEmployee(record map[string]any, workerType models.WorkerType) (rec dbmodels.Employee, ok bool) {
	email := helpers.NormalizeEmail(helpers.PickString(record, emailKeys...))
	if email == "" {
		return rec, false
	}
	fullName := helpers.PickString(record, fullNameKeys...)
	if fullName == "" {
		fullName = email
	}
	return dbmodels.Employee{
		Email:      email,
		FullName:   fullName,
		Role:       helpers.PickString(record, roleKeys...),
		Department: helpers.PickString(record, departmentKeys...),
		Manager:    helpers.PickString(record, managerKeys...),
		Status:     helpers.PickString(record, statusKeys...),
		WorkerType: workerType,
		HireDate:   helpers.ParseOptionalDate(helpers.PickString(record, hireDateKeys...)),
		EndDate:    helpers.ParseOptionalDate(helpers.PickString(record, endDateKeys...)),
	}, true
}

// dedupe keeps the last row per e-mail, in first-seen order.
func dedupe(list []dbmodels.Employee) []dbmodels.Employee {
	index := map[string]int{}
	result := make([]dbmodels.Employee, 0, len(list))
	for _, rec := range list {
		if idx, exist := index[rec.Email]; exist {
			result[idx] = rec
			continue
		}
		index[rec.Email] = len(result)
		result = append(result, rec)
	}
	return result
}
