package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foliohq/folio/internal/content"
	"github.com/foliohq/folio/internal/storage/db"
)

func (h handler) listNavigation(c echo.Context) error {
	items, err := h.store.ListNavigationItems(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h handler) createNavigation(c echo.Context) error {
	var item db.NavigationItem
	if err := h.decode(c, schemaNavigation, &item); err != nil {
		return err
	}
	item.ID = 0
	created, err := h.store.CreateNavigationItem(c.Request().Context(), item)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, created)
}

func (h handler) updateNavigation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var item db.NavigationItem
	if err := h.decode(c, schemaNavigation, &item); err != nil {
		return err
	}
	item.ID = id
	updated, err := h.store.UpdateNavigationItem(c.Request().Context(), item)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h handler) deleteNavigation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteNavigationItem(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h handler) getContentSection(c echo.Context) error {
	section, err := h.store.GetContentSection(c.Request().Context(), c.Param("sectionKey"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, section)
}

// putContentSection upserts by key: the path parameter wins over any key in
// the body so a section can never be renamed out from under its URL.
func (h handler) putContentSection(c echo.Context) error {
	var section db.ContentSection
	if err := h.decode(c, schemaContentSection, &section); err != nil {
		return err
	}
	section.ID = 0
	section.SectionKey = c.Param("sectionKey")
	saved, err := h.store.UpsertContentSection(c.Request().Context(), section)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, saved)
}

func (h handler) listBlogPosts(c echo.Context) error {
	publishedOnly := c.QueryParam("published") == "true"
	posts, err := h.store.ListBlogPosts(c.Request().Context(), publishedOnly)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h handler) getBlogPost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	post, err := h.store.GetBlogPost(ctx, id)
	if err != nil {
		return httpError(err)
	}
	if err := h.store.IncrementBlogPostViews(ctx, id); err != nil {
		return httpError(err)
	}
	post.Views++

	if c.QueryParam("render") == "html" {
		rendered, err := content.RenderMarkdown([]byte(post.Content))
		if err != nil {
			return err
		}
		post.Content = string(rendered)
	}
	return c.JSON(http.StatusOK, post)
}

func (h handler) createBlogPost(c echo.Context) error {
	var post db.BlogPost
	if err := h.decode(c, schemaBlogPost, &post); err != nil {
		return err
	}
	post.ID = 0
	post.Views = 0
	created, err := h.store.CreateBlogPost(c.Request().Context(), post)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, created)
}

func (h handler) updateBlogPost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var post db.BlogPost
	if err := h.decode(c, schemaBlogPost, &post); err != nil {
		return err
	}
	post.ID = id
	updated, err := h.store.UpdateBlogPost(c.Request().Context(), post)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h handler) deleteBlogPost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteBlogPost(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h handler) listExperiences(c echo.Context) error {
	exps, err := h.store.ListExperiences(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, exps)
}

func (h handler) createExperience(c echo.Context) error {
	var exp db.Experience
	if err := h.decode(c, schemaExperience, &exp); err != nil {
		return err
	}
	exp.ID = 0
	created, err := h.store.CreateExperience(c.Request().Context(), exp)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, created)
}

func (h handler) updateExperience(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var exp db.Experience
	if err := h.decode(c, schemaExperience, &exp); err != nil {
		return err
	}
	exp.ID = id
	updated, err := h.store.UpdateExperience(c.Request().Context(), exp)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h handler) deleteExperience(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteExperience(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h handler) listEducation(c echo.Context) error {
	edus, err := h.store.ListEducation(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, edus)
}

func (h handler) createEducation(c echo.Context) error {
	var edu db.Education
	if err := h.decode(c, schemaEducation, &edu); err != nil {
		return err
	}
	edu.ID = 0
	created, err := h.store.CreateEducation(c.Request().Context(), edu)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, created)
}

func (h handler) updateEducation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var edu db.Education
	if err := h.decode(c, schemaEducation, &edu); err != nil {
		return err
	}
	edu.ID = id
	updated, err := h.store.UpdateEducation(c.Request().Context(), edu)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h handler) deleteEducation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteEducation(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// skillGroup is a category with its member skills, the shape the public site
// renders directly.
type skillGroup struct {
	db.SkillCategory
	Skills []db.Skill `json:"skills"`
}

func (h handler) listSkills(c echo.Context) error {
	ctx := c.Request().Context()
	categories, err := h.store.ListSkillCategories(ctx)
	if err != nil {
		return httpError(err)
	}
	skills, err := h.store.ListSkills(ctx)
	if err != nil {
		return httpError(err)
	}

	groups := make([]skillGroup, 0, len(categories))
	for _, cat := range categories {
		group := skillGroup{SkillCategory: cat, Skills: []db.Skill{}}
		for _, skill := range skills {
			if skill.CategoryID == cat.ID {
				group.Skills = append(group.Skills, skill)
			}
		}
		groups = append(groups, group)
	}
	return c.JSON(http.StatusOK, groups)
}

func (h handler) createSkill(c echo.Context) error {
	var skill db.Skill
	if err := h.decode(c, schemaSkill, &skill); err != nil {
		return err
	}
	skill.ID = 0
	created, err := h.store.CreateSkill(c.Request().Context(), skill)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, created)
}

func (h handler) deleteSkill(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteSkill(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h handler) createSkillCategory(c echo.Context) error {
	var cat db.SkillCategory
	if err := h.decode(c, schemaSkillCategory, &cat); err != nil {
		return err
	}
	cat.ID = 0
	created, err := h.store.CreateSkillCategory(c.Request().Context(), cat)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, created)
}

// deleteSkillCategory cascades to the category's skills at the schema level.
func (h handler) deleteSkillCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteSkillCategory(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h handler) listProjects(c echo.Context) error {
	featuredOnly := c.QueryParam("featured") == "true"
	projects, err := h.store.ListProjects(c.Request().Context(), featuredOnly)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, projects)
}

func (h handler) createProject(c echo.Context) error {
	var proj db.Project
	if err := h.decode(c, schemaProject, &proj); err != nil {
		return err
	}
	proj.ID = 0
	created, err := h.store.CreateProject(c.Request().Context(), proj)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, created)
}

func (h handler) updateProject(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var proj db.Project
	if err := h.decode(c, schemaProject, &proj); err != nil {
		return err
	}
	proj.ID = id
	updated, err := h.store.UpdateProject(c.Request().Context(), proj)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h handler) deleteProject(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteProject(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h handler) getProfile(c echo.Context) error {
	profile, err := h.store.GetProfile(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h handler) putProfile(c echo.Context) error {
	var profile db.Profile
	if err := h.decode(c, schemaProfile, &profile); err != nil {
		return err
	}
	profile.ID = 0
	saved, err := h.store.UpsertProfile(c.Request().Context(), profile)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, saved)
}
