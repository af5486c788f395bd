package rest

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"payment-preconfirm/internal/apperrors"
	"payment-preconfirm/internal/forms"
	"payment-preconfirm/internal/generator"
	"payment-preconfirm/internal/models"
	"payment-preconfirm/internal/services"
)

const defaultMaxUploadBytes = 10 * 1024 * 1024

// Допустимые расширения и MIME-типы подтверждающих документов
var (
	allowedExtensions = map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true}
	allowedMimeTypes  = []string{"application/pdf", "image/jpeg", "image/png"}
)

// HandlerDeps зависимости REST обработчиков
type HandlerDeps struct {
	Preconfirm     services.PreconfirmService
	Approvals      services.ApprovalService
	Documents      services.DocumentService
	Catalog        *forms.Catalog
	MaxUploadBytes int64
}

type Handlers struct {
	preconfirm     services.PreconfirmService
	approvals      services.ApprovalService
	documents      services.DocumentService
	catalog        *forms.Catalog
	generator      *generator.RequestGenerator
	maxUploadBytes int64
}

// Создает новые обработчики REST API
func NewHandlers(deps HandlerDeps) *Handlers {
	catalog := deps.Catalog
	if catalog == nil {
		catalog = forms.NewCatalog()
	}
	maxUpload := deps.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}

	return &Handlers{
		preconfirm:     deps.Preconfirm,
		approvals:      deps.Approvals,
		documents:      deps.Documents,
		catalog:        catalog,
		generator:      generator.NewRequestGenerator(),
		maxUploadBytes: maxUpload,
	}
}

func isAllowedContent(data []byte) bool {
	detected := mimetype.Detect(data)
	for _, mime := range allowedMimeTypes {
		if detected.Is(mime) {
			return true
		}
	}
	return false
}

// respondError переводит категорию ошибки в HTTP статус
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.Message(err)})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": apperrors.Message(err)})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": apperrors.Message(err)})
	case apperrors.IsRetryable(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": apperrors.Message(err), "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// Decide выполняет предварительную проверку платежа
// @Summary Предварительная проверка платежа
// @Description Вычисляет триггеры риска, применяет политику и атомарно сохраняет решение. После коммита отправляет событие в Kafka и кэширует итог в Redis.
// @Tags preconfirm
// @Accept json
// @Produce json
// @Param request body models.DecisionRequest true "Запрос на проверку"
// @Success 200 {object} models.DecisionOutcome "Решение"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Решение по платежу уже сохранено"
// @Failure 503 {object} map[string]interface{} "Ошибка транзакции, можно повторить"
// @Router /risk/preconfirm/decision [post]
func (h *Handlers) Decide(c *gin.Context) {
	var req models.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audit := models.AuditInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	outcome, err := h.preconfirm.Decide(c.Request.Context(), &req, audit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// ListChecks возвращает последние записи решений
// @Summary Получить список проверок
// @Description Возвращает последние записи решений, новые первыми
// @Tags preconfirm
// @Produce json
// @Param limit query int false "Лимит результатов (максимум 500)" default(100)
// @Success 200 {object} map[string]interface{} "Список проверок"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /risk/preconfirm/checks [get]
func (h *Handlers) ListChecks(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	checks, err := h.preconfirm.ListChecks(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"checks": checks})
}

// GetCheck возвращает запись решения с согласованиями и документами
// @Summary Получить проверку платежа
// @Tags preconfirm
// @Produce json
// @Param payment_id path string true "ID платежа"
// @Success 200 {object} models.CheckDetails "Запись решения"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /risk/preconfirm/checks/{payment_id} [get]
func (h *Handlers) GetCheck(c *gin.Context) {
	details, err := h.preconfirm.GetCheck(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// ClearChecks очищает хранилище и кэш решений
// @Summary Очистить все проверки
// @Description Удаляет решения, согласования и метаданные документов, а также кэш Redis
// @Tags preconfirm
// @Produce json
// @Success 200 {object} map[string]interface{} "Данные очищены"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /risk/preconfirm/checks [delete]
func (h *Handlers) ClearChecks(c *gin.Context) {
	if err := h.preconfirm.ClearAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "All preconfirm checks cleared successfully",
		"clear_storage": true,
	})
}

// GetCachedDecision возвращает итог проверки из кэша
// @Summary Получить кэшированное решение
// @Tags preconfirm
// @Produce json
// @Param payment_id path string true "ID платежа"
// @Success 200 {object} models.DecisionOutcome "Решение"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /risk/preconfirm/decisions/{payment_id}/cached [get]
func (h *Handlers) GetCachedDecision(c *gin.Context) {
	outcome, err := h.preconfirm.GetCachedDecision(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// GetForm возвращает определение формы вопросов
// @Summary Получить форму
// @Tags forms
// @Produce json
// @Param form_id path string true "ID формы"
// @Success 200 {object} forms.Form "Форма"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /risk/preconfirm/forms/{form_id} [get]
func (h *Handlers) GetForm(c *gin.Context) {
	form, err := h.catalog.GetForm(c.Param("form_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// CreateApproval создает требование согласования
// @Summary Создать согласование
// @Tags approvals
// @Accept json
// @Produce json
// @Param payment_id path string true "ID платежа"
// @Param request body models.CreateApprovalRequest true "Роль"
// @Success 201 {object} models.ApprovalRecord "Согласование"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /risk/preconfirm/approvals/{payment_id} [post]
func (h *Handlers) CreateApproval(c *gin.Context) {
	var req models.CreateApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	approval, err := h.approvals.CreateApprovalRequirement(c.Request.Context(), c.Param("payment_id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, approval)
}

// ListApprovals возвращает согласования платежа
// @Summary Получить согласования платежа
// @Tags approvals
// @Produce json
// @Param payment_id path string true "ID платежа"
// @Success 200 {object} map[string]interface{} "Список согласований"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /risk/preconfirm/approvals/{payment_id} [get]
func (h *Handlers) ListApprovals(c *gin.Context) {
	approvals, err := h.approvals.ListApprovals(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"approvals": approvals})
}

// ResolveApproval фиксирует решение проверяющего
// @Summary Решить согласование
// @Description Переводит pending-согласование в approved или rejected. Повторное решение возвращает 409.
// @Tags approvals
// @Accept json
// @Produce json
// @Param payment_id path string true "ID платежа"
// @Param approval_id path int true "ID согласования"
// @Param request body models.ResolveApprovalRequest true "Решение"
// @Success 200 {object} models.ApprovalRecord "Согласование"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Согласование уже решено"
// @Router /risk/preconfirm/approvals/{payment_id}/{approval_id}/resolve [post]
func (h *Handlers) ResolveApproval(c *gin.Context) {
	approvalID, err := strconv.ParseInt(c.Param("approval_id"), 10, 64)
	if err != nil || approvalID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approval_id must be a positive integer"})
		return
	}

	var req models.ResolveApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	approval, err := h.approvals.ResolveApproval(c.Request.Context(), c.Param("payment_id"), approvalID, req.Outcome, req.UserID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, approval)
}

// UploadDocument принимает подтверждающий документ
// @Summary Загрузить документ
// @Description Принимает PDF, JPG или PNG до 10 МБ. Файл сохраняется в payment-documents, метаданные в БД.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param payment_id path string true "ID платежа"
// @Param type formData string true "Тип документа" Enums(invoice, contract, po, screenshot)
// @Param file formData file true "Файл"
// @Success 201 {object} models.DocumentRecord "Документ"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 413 {object} map[string]string "Файл слишком большой"
// @Router /risk/preconfirm/documents/{payment_id} [post]
func (h *Handlers) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds maximum upload size"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only pdf, jpg, jpeg and png files are accepted"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds maximum upload size"})
		return
	}

	// Содержимое должно соответствовать разрешенному типу, расширению не доверяем
	if !isAllowedContent(data) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file content is not a pdf, jpeg or png"})
		return
	}

	docType := models.DocumentType(c.PostForm("type"))
	record, err := h.documents.StoreDocument(c.Request.Context(), c.Param("payment_id"), docType, data, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ListDocuments возвращает документы платежа
// @Summary Получить документы платежа
// @Tags documents
// @Produce json
// @Param payment_id path string true "ID платежа"
// @Success 200 {object} map[string]interface{} "Список документов"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /risk/preconfirm/documents/{payment_id} [get]
func (h *Handlers) ListDocuments(c *gin.Context) {
	documents, err := h.documents.ListDocuments(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

// GenerateRequest генерирует пример запроса на проверку
// @Summary Сгенерировать запрос
// @Description Генерирует запрос, который при порогах по умолчанию дает указанный исход
// @Tags preconfirm
// @Produce json
// @Param scenario query string false "Сценарий" Enums(allow, step_up, block, maker_checker)
// @Success 200 {object} models.DecisionRequest "Сгенерированный запрос"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /risk/preconfirm/generate [get]
func (h *Handlers) GenerateRequest(c *gin.Context) {
	scenario, err := generator.ParseScenario(c.Query("scenario"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.generator.GenerateDecisionRequest(scenario))
}
