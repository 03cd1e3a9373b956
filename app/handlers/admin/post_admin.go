package admin

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sellaap/go-storefront/app/services"
)

func (h *AdminHandler) GetPostsPage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "Blog Posts")

	posts, err := h.postRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetPostsPage: failed to load posts: %v", err)
		data["Message"] = "Failed to load posts."
		data["MessageStatus"] = "error"
	} else {
		data["Posts"] = posts
	}

	h.render.HTML(w, http.StatusOK, "admin/posts/index", data)
}

func (h *AdminHandler) AddPostPage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "New Post")
	data["FormAction"] = "/admin/posts/add"
	data["IsEdit"] = false

	h.render.HTML(w, http.StatusOK, "admin/posts/form", data)
}

func (h *AdminHandler) AddPostPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectResult(w, r, services.Result{Err: "invalid form"}, "", "")
		return
	}

	result := h.content.CreatePost(r.Context(), parsePostForm(r))
	h.redirectResult(w, r, result, "/admin/posts", "Post saved.")
}

func (h *AdminHandler) EditPostPage(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.postRepo.GetByID(r.Context(), postID)
	if err != nil || post == nil {
		log.Printf("EditPostPage: post %s not found: %v", postID, err)
		http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
		return
	}

	data := h.baseData(r, "Edit Post")
	data["FormAction"] = "/admin/posts/" + postID + "/edit"
	data["IsEdit"] = true
	data["Post"] = post

	h.render.HTML(w, http.StatusOK, "admin/posts/form", data)
}

func (h *AdminHandler) EditPostPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	if err := r.ParseForm(); err != nil {
		h.redirectResult(w, r, services.Result{Err: "invalid form"}, "", "")
		return
	}

	result := h.content.UpdatePost(r.Context(), postID, parsePostForm(r))
	h.redirectResult(w, r, result, "/admin/posts", "Post saved.")
}

func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	result := h.content.DeletePost(r.Context(), postID)
	h.redirectResult(w, r, result, "/admin/posts", "Post deleted.")
}

func parsePostForm(r *http.Request) services.PostInput {
	input := services.PostInput{
		Title:           r.PostFormValue("title"),
		Excerpt:         r.PostFormValue("excerpt"),
		Content:         r.PostFormValue("content"),
		CoverImage:      r.PostFormValue("cover_image"),
		Status:          r.PostFormValue("status"),
		MetaTitle:       r.PostFormValue("meta_title"),
		MetaDescription: r.PostFormValue("meta_description"),
		Keywords:        r.PostFormValue("keywords"),
	}
	for _, name := range strings.Split(r.PostFormValue("tags"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			input.TagNames = append(input.TagNames, name)
		}
	}
	return input
}
