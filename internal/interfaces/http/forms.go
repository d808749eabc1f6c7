package http

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/prestamos-api/internal/application/dto"
)

// Las rutas de préstamos y clientes aceptan JSON o multipart/form-data
// (este último para adjuntar la imagen). Aquí viven los parsers de ambos.

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// imageFromRequest extrae la imagen adjunta (campo de archivo `field`).
// Devuelve (nil, nil) si la petición no trae archivo.
func imageFromRequest(c *fiber.Ctx, field string) (*dto.ImageUpload, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	fh, err := c.FormFile(field)
	if err != nil {
		// fasthttp devuelve error cuando el campo no viene: no es un fallo.
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &dto.ImageUpload{Data: data, ContentType: contentType}, nil
}

// formValue devuelve el primer valor del campo y si estaba presente.
func formValue(form *multipart.Form, key string) (string, bool) {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// parseCreateLoanRequest arma el DTO desde JSON o multipart. Los errores de
// parseo numérico se devuelven como violaciones de campo (no como 500).
func parseCreateLoanRequest(c *fiber.Ctx) (dto.CreateLoanRequest, []string, error) {
	var in dto.CreateLoanRequest
	if !isMultipart(c) {
		if err := c.BodyParser(&in); err != nil {
			return in, nil, err
		}
		return in, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return in, nil, err
	}
	var fields []string
	if v, ok := formValue(form, "name"); ok {
		in.Name = v
	}
	if v, ok := formValue(form, "phone"); ok {
		in.Phone = v
	}
	if v, ok := formValue(form, "address"); ok {
		in.Address = v
	}
	if v, ok := formValue(form, "joinDate"); ok {
		in.JoinDate = v
	}
	if v, ok := formValue(form, "idType"); ok {
		in.IDType = v
	}
	if v, ok := formValue(form, "idNumber"); ok {
		in.IDNumber = v
	}
	if v, ok := formValue(form, "term"); ok {
		in.Term = v
	}
	if v, ok := formValue(form, "status"); ok {
		in.Status = v
	}
	if v, ok := formValue(form, "notes"); ok {
		in.Notes = v
	}
	in.LoanAmount = parseDecimalField(form, "loanAmount", "Loan amount must be a number", &fields)
	in.InterestRate = parseDecimalField(form, "interestRate", "Interest rate must be a number", &fields)
	in.Months = parseIntField(form, "months", "Months must be a whole number", &fields)
	in.Years = parseIntField(form, "years", "Years must be a whole number", &fields)
	in.TotalLoans = parseIntField(form, "totalLoans", "Total loans must be a whole number", &fields)
	return in, fields, nil
}

// parseUpdateLoanRequest igual que el create pero con punteros: solo los
// campos presentes en el formulario sobreescriben.
func parseUpdateLoanRequest(c *fiber.Ctx) (dto.UpdateLoanRequest, []string, error) {
	var in dto.UpdateLoanRequest
	if !isMultipart(c) {
		if err := c.BodyParser(&in); err != nil {
			return in, nil, err
		}
		return in, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return in, nil, err
	}
	var fields []string
	in.Name = strField(form, "name")
	in.Phone = strField(form, "phone")
	in.Address = strField(form, "address")
	in.JoinDate = strField(form, "joinDate")
	in.IDType = strField(form, "idType")
	in.IDNumber = strField(form, "idNumber")
	in.Term = strField(form, "term")
	in.Status = strField(form, "status")
	in.Notes = strField(form, "notes")
	in.LoanAmount = parseDecimalField(form, "loanAmount", "Loan amount must be a number", &fields)
	in.InterestRate = parseDecimalField(form, "interestRate", "Interest rate must be a number", &fields)
	in.Months = parseIntField(form, "months", "Months must be a whole number", &fields)
	in.Years = parseIntField(form, "years", "Years must be a whole number", &fields)
	in.TotalLoans = parseIntField(form, "totalLoans", "Total loans must be a whole number", &fields)
	return in, fields, nil
}

func parseCreateCustomerRequest(c *fiber.Ctx) (dto.CreateCustomerRequest, error) {
	var in dto.CreateCustomerRequest
	if !isMultipart(c) {
		return in, c.BodyParser(&in)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return in, err
	}
	for key, dst := range map[string]*string{
		"firstName": &in.FirstName,
		"lastName":  &in.LastName,
		"email":     &in.Email,
		"phone":     &in.Phone,
		"address":   &in.Address,
		"joinDate":  &in.JoinDate,
		"idType":    &in.IDType,
		"idNumber":  &in.IDNumber,
	} {
		if v, ok := formValue(form, key); ok {
			*dst = v
		}
	}
	return in, nil
}

func parseUpdateCustomerRequest(c *fiber.Ctx) (dto.UpdateCustomerRequest, error) {
	var in dto.UpdateCustomerRequest
	if !isMultipart(c) {
		return in, c.BodyParser(&in)
	}
	form, err := c.MultipartForm()
	if err != nil {
		return in, err
	}
	in.FirstName = strField(form, "firstName")
	in.LastName = strField(form, "lastName")
	in.Email = strField(form, "email")
	in.Phone = strField(form, "phone")
	in.Address = strField(form, "address")
	in.JoinDate = strField(form, "joinDate")
	in.IDType = strField(form, "idType")
	in.IDNumber = strField(form, "idNumber")
	return in, nil
}

// ── Helpers de campos ─────────────────────────────────────────────────────────

func strField(form *multipart.Form, key string) *string {
	if v, ok := formValue(form, key); ok {
		return &v
	}
	return nil
}

// parseDecimalField ignora el campo vacío (equivale a ausente) y acumula el
// error de parseo en fields.
func parseDecimalField(form *multipart.Form, key, msg string, fields *[]string) *decimal.Decimal {
	v, ok := formValue(form, key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		*fields = append(*fields, msg)
		return nil
	}
	return &d
}

func parseIntField(form *multipart.Form, key, msg string, fields *[]string) *int {
	v, ok := formValue(form, key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		*fields = append(*fields, msg)
		return nil
	}
	return &n
}
