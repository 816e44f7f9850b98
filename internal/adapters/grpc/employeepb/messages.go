// Package employeepb は employee.v1.EmployeeService のメッセージとサービス定義です。
// メッセージは codec パッケージの JSON コーデックで運ばれます。
package employeepb

// Employee は社員を表すメッセージです。
type Employee struct {
	Id        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (x *Employee) GetId() int64 {
	if x == nil {
		return 0
	}
	return x.Id
}

func (x *Employee) GetFirstName() string {
	if x == nil {
		return ""
	}
	return x.FirstName
}

func (x *Employee) GetLastName() string {
	if x == nil {
		return ""
	}
	return x.LastName
}

func (x *Employee) GetEmail() string {
	if x == nil {
		return ""
	}
	return x.Email
}

type SaveEmployeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type SaveEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

func (x *SaveEmployeeResponse) GetEmployee() *Employee {
	if x == nil {
		return nil
	}
	return x.Employee
}

type ListEmployeesResponse struct {
	Employees []*Employee `json:"employees"`
}

func (x *ListEmployeesResponse) GetEmployees() []*Employee {
	if x == nil {
		return nil
	}
	return x.Employees
}

type GetEmployeeRequest struct {
	Id int64 `json:"id"`
}

type GetEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

func (x *GetEmployeeResponse) GetEmployee() *Employee {
	if x == nil {
		return nil
	}
	return x.Employee
}

type UpdateEmployeeRequest struct {
	Id        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type UpdateEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

func (x *UpdateEmployeeResponse) GetEmployee() *Employee {
	if x == nil {
		return nil
	}
	return x.Employee
}

type DeleteEmployeeRequest struct {
	Id int64 `json:"id"`
}

// FindEmployeeByNameRequest の Query は positional / named / native / native_named のいずれかです。
type FindEmployeeByNameRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Query     string `json:"query,omitempty"`
}

type FindEmployeeByNameResponse struct {
	Employee *Employee `json:"employee"`
}

func (x *FindEmployeeByNameResponse) GetEmployee() *Employee {
	if x == nil {
		return nil
	}
	return x.Employee
}
