package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"medicart/internal/models"
	"medicart/internal/repository"
)

func (app *application) listMedicines(w http.ResponseWriter, r *http.Request) {
	f := repository.MedicineFilter{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 20),
	}

	meds, total, err := app.store.ListMedicines(r.Context(), f)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, newPaginated(meds, f.Page, f.Limit, total))
}

func (app *application) showMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrMedicineNotFound.Error())
		return
	}
	med, err := app.store.MedicineByID(r.Context(), id)
	if err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, med)
}

func (app *application) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := app.store.Categories(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, cats)
}

type medicineRequest struct {
	Name                 string       `json:"name" validate:"required"`
	Brand                string       `json:"brand" validate:"required"`
	Category             string       `json:"category" validate:"required"`
	Price                models.Money `json:"price"`
	Stock                int          `json:"stock" validate:"min=0"`
	RequiresPrescription bool         `json:"requires_prescription"`
	Description          string       `json:"description"`
}

func (app *application) createMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}
	if req.Price.IsNegative() {
		app.clientError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	med := &models.Medicine{
		Name:                 req.Name,
		Brand:                req.Brand,
		Category:             req.Category,
		Price:                req.Price,
		Stock:                req.Stock,
		RequiresPrescription: req.RequiresPrescription,
		Description:          req.Description,
		CreatedAt:            time.Now(),
	}
	if err := app.store.CreateMedicine(r.Context(), med); err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, med)
}

func (app *application) updateMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrMedicineNotFound.Error())
		return
	}

	var req medicineRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}
	if req.Price.IsNegative() {
		app.clientError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	med := &models.Medicine{
		ID:                   id,
		Name:                 req.Name,
		Brand:                req.Brand,
		Category:             req.Category,
		Price:                req.Price,
		Stock:                req.Stock,
		RequiresPrescription: req.RequiresPrescription,
		Description:          req.Description,
	}
	if err := app.store.UpdateMedicine(r.Context(), med); err != nil {
		app.businessError(w, err)
		return
	}
	updated, err := app.store.MedicineByID(r.Context(), id)
	if err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, updated)
}

func (app *application) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrMedicineNotFound.Error())
		return
	}
	if err := app.store.DeleteMedicine(r.Context(), id); err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"message": "medicine deleted"})
}

func (app *application) uploadMedicineImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrMedicineNotFound.Error())
		return
	}

	url, err := app.saveUpload(r, "image")
	if err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.store.SetMedicineImage(r.Context(), id, url); err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// saveUpload stores a multipart file under the upload dir with a fresh uuid
// name and returns the public reference.
func (app *application) saveUpload(r *http.Request, field string) (string, error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return "", fmt.Errorf("parse multipart form: %w", err)
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("missing %q file: %w", field, err)
	}
	defer file.Close()

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(app.cfg.UploadDir, name))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return "/uploads/" + name, nil
}
