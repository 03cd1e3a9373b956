package admin

import (
	"log"
	"net/http"

	"github.com/sellaap/go-storefront/app/services"
)

const maxUploadSize = 10 << 20 // 10 MiB

func (h *AdminHandler) GetMediaPage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "Media")

	images, err := h.imageRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetMediaPage: failed to load images: %v", err)
		data["Message"] = "Failed to load images."
		data["MessageStatus"] = "error"
	} else {
		data["Images"] = images
	}

	h.render.HTML(w, http.StatusOK, "admin/media/index", data)
}

// UploadImage accepts one multipart "file" field plus an optional
// "folder" hint and answers JSON so the editor widgets can insert the
// returned URL inline.
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.jsonResult(w, services.Result{Err: "upload too large or malformed"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.jsonResult(w, services.Result{Err: "missing file field"})
		return
	}
	defer file.Close()

	result := h.uploads.Upload(r.Context(), file, header, r.FormValue("folder"))
	h.jsonResult(w, result)
}
